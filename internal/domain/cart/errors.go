package cart

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// 购物车领域错误定义
var (
	ErrCartNotFound     = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车中没有该条目")
	ErrCartEmpty        = apperrors.New(apperrors.ErrCodeCartEmpty, "购物车为空")
	ErrInvalidQuantity  = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
