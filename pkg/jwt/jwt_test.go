package jwt

import (
	"testing"
	"time"

	"github.com/Filson-aj/hallmarkacademy-sub000/config"
)

func testManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 30 * 24 * time.Hour,
	})
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.GenerateAccessToken("user-1", "admin", "school-1")
	if err != nil {
		t.Fatalf("生成 access token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("期望 user_id user-1，实际: %s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("期望角色 admin，实际: %s", claims.Role)
	}
	if claims.SchoolID != "school-1" {
		t.Errorf("期望 school_id school-1，实际: %s", claims.SchoolID)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 token 类型 access，实际: %s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("期望生成 jti")
	}
	if claims.Issuer != "hallmark-academy" {
		t.Errorf("期望签发者 hallmark-academy，实际: %s", claims.Issuer)
	}
}

func TestManager_RefreshTokenTTL(t *testing.T) {
	m := testManager()

	normal, err := m.GenerateRefreshToken("user-1", "admin", "school-1", false)
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}
	remember, err := m.GenerateRefreshToken("user-1", "admin", "school-1", true)
	if err != nil {
		t.Fatalf("生成 refresh token 失败: %v", err)
	}

	nc, err := m.ParseToken(normal)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	rc, err := m.ParseToken(remember)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}

	if nc.RememberMe {
		t.Error("期望普通 refresh token 无 remember_me 标记")
	}
	if !rc.RememberMe {
		t.Error("期望 remember_me refresh token 携带标记")
	}
	if !rc.ExpiresAt.After(nc.ExpiresAt.Time) {
		t.Error("期望 remember_me token 有效期更长")
	}
}

func TestManager_ParseToken_WrongSecret(t *testing.T) {
	m := testManager()
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-key-entirely-here",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := m.GenerateAccessToken("user-1", "admin", "school-1")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestManager_ParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: -time.Minute,
	})

	token, err := m.GenerateAccessToken("user-1", "admin", "school-1")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseToken_Garbage(t *testing.T) {
	m := testManager()
	if _, err := m.ParseToken("not.a.jwt"); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
