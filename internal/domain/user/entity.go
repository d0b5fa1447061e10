package user

import (
	"strings"
	"time"
)

// Role 角色名称
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AllRoles 迁移时写入roles表
var AllRoles = []Role{RoleUser, RoleAdmin}

// User 用户实体(聚合根)
// 1. Password是bcrypt哈希值,不保存明文
// 2. 领域实体不依赖GORM tag,映射在infrastructure层完成
type User struct {
	ID              uint
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress string
	Roles           []Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码,邮箱统一转小写
func NewUser(email, hashedPassword, firstName, lastName, shippingAddress string, roles ...Role) *User {
	if len(roles) == 0 {
		roles = []Role{RoleUser}
	}
	now := time.Now()
	return &User{
		Email:           NormalizeEmail(email),
		Password:        hashedPassword,
		FirstName:       firstName,
		LastName:        lastName,
		ShippingAddress: shippingAddress,
		Roles:           roles,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasRole 是否拥有角色
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// RoleNames 角色名列表(写入JWT)
func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = string(r)
	}
	return names
}

// FullName 姓名
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail 邮箱比较不区分大小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
