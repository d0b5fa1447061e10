package order

import (
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound     = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在")

	// ErrInvalidStatus 未知的订单状态(400)
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "未知的订单状态")

	// ErrInvalidStatusTransition 非法的状态流转(409)
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")
)
