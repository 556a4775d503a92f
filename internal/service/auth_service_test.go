package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Filson-aj/hallmarkacademy-sub000/config"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/dto"
	"github.com/Filson-aj/hallmarkacademy-sub000/internal/model"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/jwt"
)

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 30 * 24 * time.Hour,
		},
		Academy: config.AcademyConfig{
			AdmissionPrefix: "HA",
			DefaultSession:  "2025/2026",
		},
	}
}

func hashTestPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	return string(hash)
}

func strPtr(s string) *string {
	return &s
}

func setupTestAuthService(t *testing.T) (AuthService, *mockRepos) {
	t.Helper()
	cfg := testConfig()
	repo, mocks := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks
}

// seedAdmin 预置一个 admin 账号，密码为 password123
func seedAdmin(t *testing.T, mocks *mockRepos) *model.Administration {
	t.Helper()
	school := &model.School{SchoolID: "school-1", Name: "Hallmark Academy", Email: "hq@hallmark.test"}
	mocks.School.schools[school.SchoolID] = school
	admin := &model.Administration{
		AdminID:      "admin-1",
		Username:     "principal",
		Email:        "principal@hallmark.test",
		PasswordHash: hashTestPassword(t, "password123"),
		Role:         "admin",
		SchoolID:     strPtr(school.SchoolID),
		School:       school,
	}
	mocks.Administration.admins[admin.AdminID] = admin
	return admin
}

// ═══════════════════════════════════════════════════════════
// Login
// ═══════════════════════════════════════════════════════════

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    admin.Email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("期望返回 access/refresh token")
	}
	if resp.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn 为 900 秒，实际: %d", resp.ExpiresIn)
	}
	if resp.User.ID != admin.AdminID {
		t.Errorf("期望用户 ID %s，实际: %s", admin.AdminID, resp.User.ID)
	}
	if resp.User.Role != "admin" {
		t.Errorf("期望角色 admin，实际: %s", resp.User.Role)
	}
	if resp.User.School == nil || resp.User.School.ID != "school-1" {
		t.Error("期望返回所属学校简要信息")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    admin.Email,
		Password: "wrong-password",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_AccountNotFound(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@hallmark.test",
		Password: "password123",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// 登录顺序：行政 → 教师 → 学生 → 家长，各角色账号均可登录
func TestAuthService_Login_TeacherAccount(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	teacher := &model.Teacher{
		TeacherID:    "teacher-1",
		FirstName:    "Amina",
		LastName:     "Bello",
		Email:        "amina@hallmark.test",
		PasswordHash: hashTestPassword(t, "teachpass"),
		SchoolID:     "school-1",
	}
	mocks.Teacher.teachers[teacher.TeacherID] = teacher

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    teacher.Email,
		Password: "teachpass",
	})
	if err != nil {
		t.Fatalf("教师登录失败: %v", err)
	}
	if resp.User.Role != RoleTeacher {
		t.Errorf("期望角色 teacher，实际: %s", resp.User.Role)
	}
	if resp.User.SchoolID != "school-1" {
		t.Errorf("期望 school_id school-1，实际: %s", resp.User.SchoolID)
	}
}

func TestAuthService_Login_RememberMe(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)
	cfg := testConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      admin.Email,
		Password:   "password123",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	claims, err := jwtMgr.ParseToken(resp.RefreshToken)
	if err != nil {
		t.Fatalf("解析 refresh token 失败: %v", err)
	}
	if !claims.RememberMe {
		t.Error("期望 refresh token 携带 remember_me 标记")
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 token 类型 refresh，实际: %s", claims.TokenType)
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 29*24*time.Hour {
		t.Errorf("期望 remember_me 下有效期约 30 天，实际剩余: %v", remaining)
	}
}

// ═══════════════════════════════════════════════════════════
// RefreshToken
// ═══════════════════════════════════════════════════════════

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    admin.Email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	resp, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("刷新 token 失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("期望签发新的 access token")
	}
	if resp.User.ID != admin.AdminID {
		t.Errorf("期望用户 ID %s，实际: %s", admin.AdminID, resp.User.ID)
	}
}

// access token 不能用于刷新
func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    admin.Email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.AccessToken,
	})
	if err != ErrInvalidRefresh {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not-a-jwt",
	})
	if err != ErrInvalidRefresh {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// 账号被删除后 refresh token 立即失效
func TestAuthService_RefreshToken_AccountDeleted(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    admin.Email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	delete(mocks.Administration.admins, admin.AdminID)

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != ErrAccountNotFound {
		t.Errorf("期望 ErrAccountNotFound，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Me / ChangePassword
// ═══════════════════════════════════════════════════════════

func TestAuthService_Me(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	resp, err := svc.Me(context.Background(), &Principal{
		UserID: admin.AdminID, Role: "admin", SchoolID: "school-1",
	})
	if err != nil {
		t.Fatalf("获取当前账号失败: %v", err)
	}
	if resp.Email != admin.Email {
		t.Errorf("期望邮箱 %s，实际: %s", admin.Email, resp.Email)
	}
	if resp.Name != admin.Username {
		t.Errorf("期望用户名 %s，实际: %s", admin.Username, resp.Name)
	}
}

func TestAuthService_Me_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Me(context.Background(), &Principal{
		UserID: "missing", Role: "admin", SchoolID: "school-1",
	})
	if err != ErrAccountNotFound {
		t.Errorf("期望 ErrAccountNotFound，实际: %v", err)
	}
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	err := svc.ChangePassword(context.Background(), &Principal{
		UserID: admin.AdminID, Role: "admin", SchoolID: "school-1",
	}, &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "new-password-456",
	})
	if err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}

	// 新密码可登录，旧密码失效
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: admin.Email, Password: "new-password-456",
	}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: admin.Email, Password: "password123",
	}); err != ErrInvalidCredentials {
		t.Errorf("期望旧密码登录返回 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)

	err := svc.ChangePassword(context.Background(), &Principal{
		UserID: admin.AdminID, Role: "admin", SchoolID: "school-1",
	}, &dto.ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "new-password-456",
	})
	if err != ErrOldPasswordWrong {
		t.Errorf("期望 ErrOldPasswordWrong，实际: %v", err)
	}
}

// faultyBlacklist 模拟 Redis 故障的黑名单实现
type faultyBlacklist struct{}

func (f *faultyBlacklist) BlacklistToken(context.Context, string, time.Duration) error {
	return errors.New("connection refused")
}

func (f *faultyBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestAuthService_RefreshToken_RedisDownDegradesOpen(t *testing.T) {
	svc, mocks := setupTestAuthService(t)
	admin := seedAdmin(t, mocks)
	svc.(*authService).rdb = &faultyBlacklist{}

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    admin.Email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// 黑名单查询失败时降级放行，与认证中间件一致
	resp, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("期望 Redis 故障时仍可刷新，实际: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("期望签发新的 access token")
	}
}
