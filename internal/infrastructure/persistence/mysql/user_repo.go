package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// userRepository 用户仓储实现
// 1. 邮箱唯一性由数据库UNIQUE索引保证,冲突转换为ErrEmailDuplicate
// 2. 角色通过user_roles关联表保存,roles表在迁移时写入
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意:返回的是domain层的接口类型,不是具体类型(依赖倒置)
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户及角色关联
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	db := conn(ctx, r.db)

	roles, err := r.findRoles(db, u.RoleNames())
	if err != nil {
		return err
	}

	model := &UserModel{
		Email:           u.Email,
		Password:        u.Password,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ShippingAddress: u.ShippingAddress,
		Roles:           roles,
	}

	// Roles.*:只写关联表,不更新roles表
	if err := db.Omit("Roles.*").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := conn(ctx, r.db).Preload("Roles").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户,邮箱已统一转小写
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := conn(ctx, r.db).Preload("Roles").Where("email = ?", user.NormalizeEmail(email)).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) findRoles(db *gorm.DB, names []string) ([]RoleModel, error) {
	var roles []RoleModel
	if err := db.Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询角色失败")
	}
	if len(roles) != len(names) {
		return nil, apperrors.Wrap(fmt.Errorf("roles %v not seeded", names), "角色数据缺失")
	}
	return roles, nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	roles := make([]user.Role, len(model.Roles))
	for i, r := range model.Roles {
		roles[i] = user.Role(r.Name)
	}
	return &user.User{
		ID:              model.ID,
		Email:           model.Email,
		Password:        model.Password,
		FirstName:       model.FirstName,
		LastName:        model.LastName,
		ShippingAddress: model.ShippingAddress,
		Roles:           roles,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
