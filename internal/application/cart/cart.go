package cart

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// CartResponse 购物车DTO
type CartResponse struct {
	ID     uint               `json:"id"`
	UserID uint               `json:"user_id"`
	Items  []CartItemResponse `json:"items"`
	Total  decimal.Decimal    `json:"total"`
}

// CartItemResponse 购物车条目DTO
type CartItemResponse struct {
	ID        uint            `json:"id"`
	BookID    uint            `json:"book_id"`
	BookTitle string          `json:"book_title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func toCartResponse(c *cart.Cart) *CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return &CartResponse{
		ID:     c.ID,
		UserID: c.UserID,
		Items:  items,
		Total:  c.Total(),
	}
}

// loadOrCreate 读取用户购物车,不存在时创建
// 注册时已经创建购物车,这里兼容早于该规则的用户
func loadOrCreate(ctx context.Context, repo cart.Repository, userID uint) (*cart.Cart, error) {
	c, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = cart.NewCart(userID)
	if err := repo.Create(ctx, c); err != nil {
		// 并发请求已经创建
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			return repo.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}

// GetCartUseCase 查询当前用户的购物车
type GetCartUseCase struct {
	cartRepo cart.Repository
}

func NewGetCartUseCase(cartRepo cart.Repository) *GetCartUseCase {
	return &GetCartUseCase{cartRepo: cartRepo}
}

func (uc *GetCartUseCase) Execute(ctx context.Context, userID uint) (*CartResponse, error) {
	c, err := loadOrCreate(ctx, uc.cartRepo, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// AddItemUseCase 加入购物车
type AddItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

func NewAddItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *AddItemUseCase {
	return &AddItemUseCase{cartRepo: cartRepo, bookRepo: bookRepo}
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// Execute 图书已在购物车中时累加数量
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*CartResponse, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	c, err := loadOrCreate(ctx, uc.cartRepo, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.AddItem(ctx, c.ID, req.BookID, req.Quantity); err != nil {
		return nil, err
	}

	c, err = uc.cartRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// UpdateItemUseCase 修改条目数量
type UpdateItemUseCase struct {
	cartRepo cart.Repository
}

func NewUpdateItemUseCase(cartRepo cart.Repository) *UpdateItemUseCase {
	return &UpdateItemUseCase{cartRepo: cartRepo}
}

// UpdateItemRequest 修改数量请求
type UpdateItemRequest struct {
	UserID   uint
	ItemID   uint
	Quantity int
}

// Execute 条目不属于当前用户的购物车返回ErrCartItemNotFound
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*CartResponse, error) {
	if err := cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	c, err := loadOrCreate(ctx, uc.cartRepo, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.UpdateItemQuantity(ctx, c.ID, req.ItemID, req.Quantity); err != nil {
		return nil, err
	}

	c, err = uc.cartRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(c), nil
}

// RemoveItemUseCase 删除条目
type RemoveItemUseCase struct {
	cartRepo cart.Repository
}

func NewRemoveItemUseCase(cartRepo cart.Repository) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartRepo: cartRepo}
}

func (uc *RemoveItemUseCase) Execute(ctx context.Context, userID, itemID uint) error {
	c, err := loadOrCreate(ctx, uc.cartRepo, userID)
	if err != nil {
		return err
	}
	return uc.cartRepo.RemoveItem(ctx, c.ID, itemID)
}
