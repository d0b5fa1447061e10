package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain层的实体不依赖GORM,Repository负责两者之间的转换
// 3. 带 ->;-:migration 的字段只读且不建列,由JOIN查询填充

// RoleModel 角色
type RoleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:20;not null;comment:角色名(USER/ADMIN)"`
}

func (RoleModel) TableName() string {
	return "roles"
}

// UserModel 用户
type UserModel struct {
	ID              uint           `gorm:"primaryKey"`
	Email           string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password        string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	FirstName       string         `gorm:"size:50;comment:名"`
	LastName        string         `gorm:"size:50;comment:姓"`
	ShippingAddress string         `gorm:"size:255;comment:默认收货地址"`
	Roles           []RoleModel    `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
	CreatedAt       time.Time      `gorm:"comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel 分类
type CategoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"size:100;not null;comment:分类名称"`
	Description string         `gorm:"size:500;comment:分类描述"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel 图书
// 1. 价格decimal(10,2),避免浮点误差
// 2. ISBN只建普通索引:软删除的图书可以保留相同ISBN,唯一性在应用层检查
// 3. title/author/isbn都有索引,用于IN查询
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"index;size:255;not null;comment:书名"`
	Author      string          `gorm:"index;size:255;not null;comment:作者"`
	ISBN        string          `gorm:"column:isbn;index;size:20;not null;comment:ISBN号"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	Description string          `gorm:"type:text;comment:图书描述"`
	CoverImage  string          `gorm:"size:500;comment:封面图片URL"`
	Categories  []CategoryModel `gorm:"many2many:book_categories;joinForeignKey:BookID;joinReferences:CategoryID"`
	CreatedAt   time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt  `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// BookCategoryModel 图书-分类关联表,写入时直接维护
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (BookCategoryModel) TableName() string {
	return "book_categories"
}

// CartModel 购物车,每个用户一个
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel 购物车条目,(cart_id, book_id)唯一
type CartItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	CartID    uint            `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID    uint            `gorm:"uniqueIndex:idx_cart_book;not null;comment:图书ID"`
	Quantity  int             `gorm:"not null;comment:数量"`
	BookTitle string          `gorm:"->;-:migration"`
	BookPrice decimal.Decimal `gorm:"->;-:migration"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel 订单,与OrderItemModel一对多
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Status          string           `gorm:"index;size:20;not null;default:PENDING;comment:订单状态"`
	Total           decimal.Decimal  `gorm:"type:decimal(10,2);not null;comment:订单总金额"`
	OrderDate       time.Time        `gorm:"index;not null;comment:下单时间"`
	ShippingAddress string           `gorm:"size:255;not null;comment:收货地址"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细,Price是下单时的价格快照
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null;comment:订单ID"`
	BookID    uint            `gorm:"index;not null;comment:图书ID"`
	Quantity  int             `gorm:"not null;comment:购买数量"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
	BookTitle string          `gorm:"->;-:migration"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
