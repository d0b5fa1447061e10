package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/jwt"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// Context中保存的用户信息
const (
	ctxKeyUserID      = "user_id"
	ctxKeyEmail       = "email"
	ctxKeyRoles       = "roles"
	ctxKeyAccessToken = "access_token"
	ctxKeyTokenExpiry = "token_expires_at"
)

// TokenBlacklist 已登出Token的黑名单
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Bearer Token
// 2. 检查Token黑名单
// 3. 校验签名、有效期和Token类型(Refresh Token不能访问接口)
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录
//
//	orders := r.Group("/orders", authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		revoked, err := m.blacklist.IsBlacklisted(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.ErrorWithCode(c, apperrors.ErrCodeTokenExpired, "Token已失效,请重新登录")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseAccessToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyEmail, claims.Email)
		c.Set(ctxKeyRoles, claims.Roles)
		c.Set(ctxKeyAccessToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(ctxKeyTokenExpiry, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// RequireRole 拥有任一角色即可,必须放在RequireAuth之后
//
//	books.POST("", auth.RequireAuth(), auth.RequireRole("ADMIN"), h.CreateBook)
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, want := range roles {
			if HasRole(c, want) {
				c.Next()
				return
			}
		}
		response.Error(c, apperrors.ErrForbidden)
		c.Abort()
	}
}

// GetUserID 当前登录用户ID,未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}

// MustGetUserID 用于已经通过RequireAuth的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}

// GetEmail 当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxKeyEmail)
}

// GetRoles 当前登录用户角色
func GetRoles(c *gin.Context) []string {
	return c.GetStringSlice(ctxKeyRoles)
}

// HasRole 当前用户是否拥有角色
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// GetAccessToken 当前请求使用的Access Token(登出时加入黑名单)
func GetAccessToken(c *gin.Context) string {
	return c.GetString(ctxKeyAccessToken)
}

// GetTokenExpiry Access Token的过期时间
func GetTokenExpiry(c *gin.Context) time.Time {
	return c.GetTime(ctxKeyTokenExpiry)
}
