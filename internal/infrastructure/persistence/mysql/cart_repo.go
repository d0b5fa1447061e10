package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// cartRepository 购物车仓储实现
// 条目读取时JOIN books带出标题和当前价格
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Create user_id有唯一索引,重复创建返回ErrDuplicateEntry
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{UserID: c.UserID}
	if err := conn(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrDuplicateEntry.WithCause(err)
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.find(conn(ctx, r.db), userID)
}

// LockByUserID SELECT ... FOR UPDATE锁定购物车行
// 必须在TxManager.Transaction中调用,否则锁在语句结束时就释放了
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	return r.find(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

// AddItem 已存在的条目累加数量
//
//	MySQL:    INSERT ... ON DUPLICATE KEY UPDATE quantity = cart_items.quantity + ?
//	Postgres: INSERT ... ON CONFLICT (cart_id, book_id) DO UPDATE SET quantity = cart_items.quantity + ?
func (r *cartRepository) AddItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	item := &CartItemModel{CartID: cartID, BookID: bookID, Quantity: quantity}
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
		}),
	}).Create(item).Error
	if err != nil {
		return apperrors.Wrap(err, "添加购物车条目失败")
	}
	return nil
}

// UpdateItemQuantity 先确认条目属于该购物车
// MySQL在值未变化时RowsAffected为0,不能用来判断条目是否存在
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error {
	db := conn(ctx, r.db)

	var count int64
	if err := db.Model(&CartItemModel{}).Where("id = ? AND cart_id = ?", itemID, cartID).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询购物车条目失败")
	}
	if count == 0 {
		return cart.ErrCartItemNotFound
	}

	err := db.Model(&CartItemModel{}).Where("id = ? AND cart_id = ?", itemID, cartID).Update("quantity", quantity).Error
	if err != nil {
		return apperrors.Wrap(err, "更新购物车条目失败")
	}
	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	result := conn(ctx, r.db).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	if err := conn(ctx, r.db).Where("cart_id = ?", cartID).Delete(&CartItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func (r *cartRepository) find(db *gorm.DB, userID uint) (*cart.Cart, error) {
	var model CartModel
	if err := db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	var items []CartItemModel
	err := db.Session(&gorm.Session{NewDB: true}).
		Model(&CartItemModel{}).
		Select("cart_items.*, books.title AS book_title, books.price AS book_price").
		Joins("JOIN books ON books.id = cart_items.book_id AND books.deleted_at IS NULL").
		Where("cart_items.cart_id = ?", model.ID).
		Order("cart_items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	model.Items = items

	return toCartEntity(&model), nil
}

func toCartEntity(model *CartModel) *cart.Cart {
	items := make([]cart.CartItem, len(model.Items))
	for i, it := range model.Items {
		items[i] = cart.CartItem{
			ID:        it.ID,
			CartID:    it.CartID,
			BookID:    it.BookID,
			BookTitle: it.BookTitle,
			Price:     it.BookPrice,
			Quantity:  it.Quantity,
		}
	}
	return &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		Items:     items,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
