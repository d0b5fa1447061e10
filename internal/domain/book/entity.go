package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// 1. 价格使用decimal.Decimal,避免浮点误差
// 2. ISBN在未删除的图书中唯一(由应用层在写入前检查)
// 3. CategoryIDs是多对多关联,只保存分类ID,不引用Category聚合
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// 调用方需先通过ValidateISBN和ValidatePrice校验
func NewBook(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		ISBN:        strings.TrimSpace(isbn),
		Price:       price,
		Description: description,
		CoverImage:  coverImage,
		CategoryIDs: dedupeIDs(categoryIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Patch 部分更新,nil表示该字段未提供
type Patch struct {
	Title       *string
	Author      *string
	ISBN        *string
	Price       *decimal.Decimal
	Description *string
	CoverImage  *string
	CategoryIDs *[]uint // 提供时整体替换
}

// Validate 校验Patch中出现的字段
func (p Patch) Validate() error {
	if p.ISBN != nil {
		if err := ValidateISBN(*p.ISBN); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := ValidatePrice(*p.Price); err != nil {
			return err
		}
	}
	return nil
}

// ApplyPatch 合并Patch,未提供的字段保持原值
func (b *Book) ApplyPatch(p Patch) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ISBN != nil {
		b.ISBN = strings.TrimSpace(*p.ISBN)
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.CoverImage != nil {
		b.CoverImage = *p.CoverImage
	}
	if p.CategoryIDs != nil {
		b.CategoryIDs = dedupeIDs(*p.CategoryIDs)
	}
	b.UpdatedAt = time.Now()
}

// InCategory 是否属于指定分类
func (b *Book) InCategory(categoryID uint) bool {
	for _, id := range b.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// ValidatePrice 价格必须>0
func ValidatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// ValidateISBN 校验ISBN格式
// 去掉分隔符(空格、连字符)后必须是10位或13位数字,
// ISBN-10的最后一位允许是X。不校验校验位。
func ValidateISBN(isbn string) error {
	digits := make([]rune, 0, 13)
	for _, r := range strings.TrimSpace(isbn) {
		switch {
		case r == '-' || r == ' ':
			continue
		case r >= '0' && r <= '9':
			digits = append(digits, r)
		case (r == 'X' || r == 'x') && len(digits) == 9:
			digits = append(digits, 'X')
		default:
			return ErrInvalidISBN
		}
	}

	switch len(digits) {
	case 10:
		return nil
	case 13:
		if digits[12] == 'X' {
			return ErrInvalidISBN
		}
		return nil
	default:
		return ErrInvalidISBN
	}
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
