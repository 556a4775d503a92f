package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Filson-aj/hallmarkacademy-sub000/internal/service"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/jwt"
	"github.com/Filson-aj/hallmarkacademy-sub000/pkg/response"
)

// principalFromContext 从 Gin 上下文中提取当前调用者身份。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func principalFromContext(c *gin.Context) (*service.Principal, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	uid, ok := userID.(string)
	if !ok || uid == "" {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}

	role, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	r, ok := role.(string)
	if !ok || r == "" {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}

	// super 角色的 school_id 为空字符串
	schoolID := c.GetString("school_id")

	return &service.Principal{UserID: uid, Role: r, SchoolID: schoolID}, true
}

// claimsFromContext 从 Gin 上下文中提取完整 JWT Claims（登出时需要 jti）。
func claimsFromContext(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}
