package memory

import (
	"context"

	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

type userRepository struct {
	s *Store
}

// NewUserRepository 创建用户仓储
func NewUserRepository(s *Store) user.Repository {
	return &userRepository{s: s}
}

// Create 邮箱唯一(不区分大小写)
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	return r.s.write(ctx, func(t *tables) error {
		email := user.NormalizeEmail(u.Email)
		for _, existing := range t.users {
			if existing.Email == email {
				return apperrors.ErrEmailDuplicate
			}
		}

		now := r.s.now()
		t.seq.user++
		u.ID = t.seq.user
		u.Email = email
		u.CreatedAt = now
		u.UpdatedAt = now

		row := *u
		row.Roles = append([]user.Role(nil), u.Roles...)
		t.users[u.ID] = row
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var found *user.User
	err := r.s.read(ctx, func(t *tables) error {
		row, ok := t.users[id]
		if !ok {
			return apperrors.ErrUserNotFound
		}
		found = copyUser(row)
		return nil
	})
	return found, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	var found *user.User
	err := r.s.read(ctx, func(t *tables) error {
		for _, row := range t.users {
			if row.Email == email {
				found = copyUser(row)
				return nil
			}
		}
		return apperrors.ErrUserNotFound
	})
	return found, err
}

func copyUser(row user.User) *user.User {
	row.Roles = append([]user.Role(nil), row.Roles...)
	return &row
}
