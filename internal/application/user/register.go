package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/logger"
)

// RegisterUseCase 用户注册
// 1. 密码强度校验 + bcrypt加密
// 2. 邮箱唯一
// 3. 用户和购物车在同一事务中创建
// 4. auth.admin_emails中的邮箱额外获得ADMIN角色
type RegisterUseCase struct {
	tx          application.Transactor
	userRepo    user.Repository
	cartRepo    cart.Repository
	passwords   user.PasswordService
	adminEmails map[string]bool
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	tx application.Transactor,
	userRepo user.Repository,
	cartRepo cart.Repository,
	passwords user.PasswordService,
	adminEmails []string,
) *RegisterUseCase {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[user.NormalizeEmail(e)] = true
	}
	return &RegisterUseCase{
		tx:          tx,
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		passwords:   passwords,
		adminEmails: admins,
	}
}

// RegisterRequest 注册请求(repeat_password在HTTP绑定时已校验)
type RegisterRequest struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	email := user.NormalizeEmail(req.Email)

	hashed, err := uc.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailDuplicate
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	roles := []user.Role{user.RoleUser}
	if uc.adminEmails[email] {
		roles = append(roles, user.RoleAdmin)
	}
	u := user.NewUser(email, hashed, req.FirstName, req.LastName, req.ShippingAddress, roles...)

	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, u); err != nil {
			return err
		}
		return uc.cartRepo.Create(txCtx, cart.NewCart(u.ID))
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered",
		slog.Uint64("user_id", uint64(u.ID)),
		slog.Any("roles", u.RoleNames()),
	)
	resp := toUserResponse(u)
	return &resp, nil
}

// UserResponse 用户信息DTO,不包含密码
type UserResponse struct {
	ID              uint     `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	ShippingAddress string   `json:"shipping_address"`
	Roles           []string `json:"roles"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           u.RoleNames(),
	}
}
