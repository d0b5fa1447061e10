package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/jwt"
	"github.com/xiebiao/onlinebookstore/pkg/logger"
)

// SessionStore 登录会话与Token黑名单
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error
	HasSession(ctx context.Context, userID uint) (bool, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录
// 1. 验证邮箱密码(邮箱不存在和密码错误返回同一个错误)
// 2. 生成JWT Token对
// 3. 保存会话到Redis,有效期与Refresh Token一致
type LoginUseCase struct {
	userRepo   user.Repository
	passwords  user.PasswordService
	jwtManager *jwt.Manager
	sessions   SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userRepo user.Repository,
	passwords user.PasswordService,
	jwtManager *jwt.Manager,
	sessions SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:   userRepo,
		passwords:  passwords,
		jwtManager: jwtManager,
		sessions:   sessions,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // Access Token有效期(秒)
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userRepo.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := uc.passwords.Verify(u.Password, req.Password); err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.RoleNames())
	if err != nil {
		return nil, err
	}

	session := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessions.SaveSession(ctx, u.ID, session, uc.jwtManager.RefreshTokenTTL()); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user logged in",
		slog.Uint64("user_id", uint64(u.ID)),
		slog.String("ip", req.ClientIP),
	)
	return &LoginResponse{
		User:         toUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// RefreshTokenUseCase 用Refresh Token换新的Access Token
type RefreshTokenUseCase struct {
	userRepo   user.Repository
	jwtManager *jwt.Manager
	sessions   SessionStore
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(userRepo user.Repository, jwtManager *jwt.Manager, sessions SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{userRepo: userRepo, jwtManager: jwtManager, sessions: sessions}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Execute 登出后会话被删除,Refresh Token随之失效
// 角色从数据库重新读取,不信任旧Token
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	ok, err := uc.sessions.HasSession(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	u, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	access, err := uc.jwtManager.GenerateAccessToken(u.ID, u.Email, u.RoleNames())
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出
type LogoutUseCase struct {
	sessions SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessions SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

// Execute 删除会话,并把Access Token加入黑名单直到它自然过期
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string, expiresAt time.Time) error {
	if err := uc.sessions.DeleteSession(ctx, userID); err != nil {
		return err
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := uc.sessions.AddToBlacklist(ctx, accessToken, ttl); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("user logged out", slog.Uint64("user_id", uint64(userID)))
	return nil
}
