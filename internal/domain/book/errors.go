package book

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound  = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")
	ErrInvalidPrice  = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")
	ErrInvalidISBN   = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrUnknownSearchField 搜索字段没有注册Provider
	// 属于配置错误(500),不是用户输入错误:HTTP层只会传入已知字段
	ErrUnknownSearchField = apperrors.New(apperrors.ErrCodeConfigError, "未注册的搜索字段")

	// ErrInvalidSpecProvider 注册Provider时参数非法
	ErrInvalidSpecProvider = apperrors.New(apperrors.ErrCodeConfigError, "搜索条件注册失败")
)
