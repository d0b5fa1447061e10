package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		code int
		want int
	}{
		{"成功", 0, http.StatusOK},
		{"参数错误", ErrCodeInvalidParams, http.StatusBadRequest},
		{"密码强度不足", ErrCodeWeakPassword, http.StatusBadRequest},
		{"未登录", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"凭证错误", ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"无权限", ErrCodeForbidden, http.StatusForbidden},
		{"图书不存在", ErrCodeBookNotFound, http.StatusNotFound},
		{"购物车为空", ErrCodeCartEmpty, http.StatusConflict},
		{"邮箱重复", ErrCodeEmailDuplicate, http.StatusConflict},
		{"非法状态流转", ErrCodeInvalidOrderStatus, http.StatusConflict},
		{"内部错误", ErrCodeInternal, http.StatusInternalServerError},
		{"配置错误", ErrCodeConfigError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.code))
		})
	}
}

func TestAppError_Is(t *testing.T) {
	t.Run("附带原因后仍可识别", func(t *testing.T) {
		err := ErrEmailDuplicate.WithCause(stderrors.New("duplicate key"))
		assert.True(t, stderrors.Is(err, ErrEmailDuplicate))
		assert.False(t, stderrors.Is(err, ErrWeakPassword))
	})

	t.Run("fmt包装后仍可识别", func(t *testing.T) {
		err := fmt.Errorf("register: %w", ErrWeakPassword)
		assert.True(t, stderrors.Is(err, ErrWeakPassword))
		assert.Equal(t, ErrCodeWeakPassword, GetAppError(err).Code)
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(stderrors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.Contains(t, appErr.Error(), "boom")
	})
}
