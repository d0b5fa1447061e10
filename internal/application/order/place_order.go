package order

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
	"github.com/xiebiao/onlinebookstore/pkg/logger"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
	"github.com/xiebiao/onlinebookstore/pkg/tracing"
)

const tracerName = "application/order"

// ErrShippingAddressRequired 收货地址为空
var ErrShippingAddressRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")

// PlaceOrderUseCase 购物车下单
//
// 整个流程在一个事务中完成:
//  1. SELECT ... FOR UPDATE 锁定购物车行,加载条目(带图书标题和当前价格)
//  2. 购物车为空返回ErrCartEmpty
//  3. 按条目生成订单明细,快照价格,计算合计
//  4. 写入订单和明细
//  5. 清空购物车条目(购物车本身保留)
//
// 同一用户并发下单时,第二个请求在步骤1等待锁,
// 第一个提交后它看到的是空购物车,返回409。
type PlaceOrderUseCase struct {
	tx        application.Transactor
	cartRepo  cart.Repository
	orderRepo order.Repository
	publisher EventPublisher
	now       func() time.Time
}

// NewPlaceOrderUseCase publisher为nil时不发布事件
func NewPlaceOrderUseCase(
	tx application.Transactor,
	cartRepo cart.Repository,
	orderRepo order.Repository,
	publisher EventPublisher,
) *PlaceOrderUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &PlaceOrderUseCase{
		tx:        tx,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          uint // 从JWT中提取
	ShippingAddress string
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (_ *OrderResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", int64(req.UserID)))

	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, ErrShippingAddressRequired
	}

	var placed *order.Order
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.cartRepo.LockByUserID(txCtx, req.UserID)
		if err != nil {
			return err
		}

		o, err := order.NewFromCart(c, address, uc.now())
		if err != nil {
			return err
		}

		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		if err := uc.cartRepo.ClearItems(txCtx, c.ID); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		metrics.IncOrderFailed(failureReason(err))
		return nil, err
	}

	metrics.ObserveOrderPlaced(time.Since(start))
	span.SetAttributes(
		attribute.String("order.no", placed.OrderNo),
		attribute.Int("order.item_count", len(placed.Items)),
	)

	log := logger.FromContext(ctx)
	log.Info("order placed",
		slog.Uint64("order_id", uint64(placed.ID)),
		slog.String("order_no", placed.OrderNo),
		slog.Uint64("user_id", uint64(placed.UserID)),
		slog.String("total", placed.Total.StringFixed(2)),
		slog.Int("items", len(placed.Items)),
	)

	// 事务已提交,事件发布失败不影响下单结果
	if err := uc.publisher.PublishOrderPlaced(ctx, order.NewPlacedEvent(placed)); err != nil {
		log.Warn("publish order placed event failed",
			slog.String("order_no", placed.OrderNo),
			slog.Any("error", err),
		)
	}

	resp := toOrderResponse(placed)
	return &resp, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, cart.ErrCartEmpty):
		return "cart_empty"
	case errors.Is(err, cart.ErrCartNotFound):
		return "cart_not_found"
	default:
		return "error"
	}
}
