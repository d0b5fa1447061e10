package order

import (
	"context"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
)

// EventPublisher 订单事件发布
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error
}

// NoopPublisher 未启用消息队列时使用
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(context.Context, order.PlacedEvent) error { return nil }
