// Package messaging 把领域事件发布到RabbitMQ
package messaging

import (
	"context"
	"time"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/pkg/circuitbreaker"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// Publisher mq.Publisher满足该接口
type Publisher interface {
	Exchange() string
	Publish(ctx context.Context, routingKey string, message any) error
}

// OrderEventPublisher 订单事件发布
// 经过熔断器调用,RabbitMQ不可用时快速失败,不拖慢下单
type OrderEventPublisher struct {
	publisher Publisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
}

// NewOrderEventPublisher 创建订单事件发布器
func NewOrderEventPublisher(publisher Publisher, breaker *circuitbreaker.CircuitBreaker) *OrderEventPublisher {
	if breaker == nil {
		breaker = circuitbreaker.NewCircuitBreaker("order-events", circuitbreaker.Config{})
	}
	return &OrderEventPublisher{
		publisher: publisher,
		breaker:   breaker,
		timeout:   3 * time.Second,
	}
}

// PublishOrderPlaced 发布order.placed事件
func (p *OrderEventPublisher) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.publisher.Publish(ctx, order.RoutingKeyOrderPlaced, event)
	})

	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.IncMessagePublished(p.publisher.Exchange(), order.RoutingKeyOrderPlaced, result)
	return err
}
