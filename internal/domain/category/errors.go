package category

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

var (
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")
	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空")
)
