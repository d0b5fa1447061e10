package user

import (
	"context"
)

// Repository 用户仓储接口
// 接口定义在domain层,具体实现在infrastructure/persistence下
type Repository interface {
	// Create 创建用户(包含角色关联)
	// 邮箱已存在返回errors.ErrEmailDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 不存在返回errors.ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail 不存在返回errors.ErrUserNotFound
	FindByEmail(ctx context.Context, email string) (*User, error)
}
