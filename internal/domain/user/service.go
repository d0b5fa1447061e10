package user

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// PasswordService 密码相关的领域服务
type PasswordService interface {
	// Hash 校验强度后使用bcrypt加密
	Hash(plain string) (string, error)

	// Verify 不匹配返回errors.ErrInvalidCredentials
	Verify(hashed, plain string) error
}

type passwordService struct {
	cost int
}

// NewPasswordService cost超出bcrypt范围时使用默认值12
func NewPasswordService(cost int) PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &passwordService{cost: cost}
}

func (s *passwordService) Hash(plain string) (string, error) {
	if err := ValidatePasswordStrength(plain); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

func (s *passwordService) Verify(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "密码验证失败")
}

// ValidatePasswordStrength 密码8-20位,同时包含字母和数字
func ValidatePasswordStrength(password string) error {
	n := len([]rune(password))
	if n < 8 || n > 20 {
		return apperrors.ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}
	return nil
}
