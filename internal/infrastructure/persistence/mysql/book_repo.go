package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL/PostgreSQL)
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 搜索条件由SpecificationBuilder组合成GORM Scope
type bookRepository struct {
	db    *gorm.DB
	specs *book.SpecificationBuilder[scope]
}

// NewBookRepository 创建图书仓储,搜索字段未注册完整时返回错误
func NewBookRepository(db *gorm.DB) (book.Repository, error) {
	specs, err := newBookSpecBuilder()
	if err != nil {
		return nil, err
	}
	return &bookRepository{db: db, specs: specs}, nil
}

// Create 创建图书
// 图书和分类关联在同一事务中写入
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(model).Error; err != nil {
			return err
		}
		return replaceBookCategories(tx, model.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.query(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.findByISBN(r.query(ctx), isbn)
}

// LockByISBN SELECT ... FOR UPDATE
// 记录不存在时InnoDB在isbn索引上加间隙锁,并发插入同一ISBN会被阻塞
func (r *bookRepository) LockByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.findByISBN(r.query(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), isbn)
}

func (r *bookRepository) findByISBN(db *gorm.DB, isbn string) (*book.Book, error) {
	var model BookModel
	err := db.Where("isbn = ?", isbn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 更新图书信息,分类关联整体替换
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{ID: b.ID}).Select(
			"title", "author", "isbn", "price", "description", "cover_image", "updated_at",
		).Updates(model)
		if result.Error != nil {
			return result.Error
		}
		return replaceBookCategories(tx, b.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return r.page(conn(ctx, r.db).Model(&BookModel{}), params)
}

// Search 按字段做IN查询
//
//	SELECT * FROM books
//	WHERE books.author IN (?) AND books.title IN (?, ?) AND books.deleted_at IS NULL
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams, page book.ListParams) ([]*book.Book, int64, error) {
	spec, err := r.specs.Build(params)
	if err != nil {
		return nil, 0, err
	}
	return r.page(conn(ctx, r.db).Model(&BookModel{}).Scopes(spec), page)
}

// ListByCategory 分类下的图书
func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint, params book.ListParams) ([]*book.Book, int64, error) {
	query := conn(ctx, r.db).Model(&BookModel{}).
		Joins("JOIN book_categories ON book_categories.book_id = books.id").
		Where("book_categories.category_id = ?", categoryID)
	return r.page(query, params)
}

// page 先COUNT再分页查询
func (r *bookRepository) page(query *gorm.DB, params book.ListParams) ([]*book.Book, int64, error) {
	params = params.Normalize()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	if total == 0 {
		return []*book.Book{}, 0, nil
	}

	var models []BookModel
	err := query.Preload("Categories").
		Order(orderBy(params.SortBy)).
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

func (r *bookRepository) query(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("Categories")
}

// replaceBookCategories 先删后插
func replaceBookCategories(tx *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]BookCategoryModel, len(categoryIDs))
	for i, id := range categoryIDs {
		rows[i] = BookCategoryModel{BookID: bookID, CategoryID: id}
	}
	return tx.Create(&rows).Error
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	categoryIDs := make([]uint, 0, len(model.Categories))
	for _, c := range model.Categories {
		categoryIDs = append(categoryIDs, c.ID)
	}
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		ISBN:        model.ISBN,
		Price:       model.Price,
		Description: model.Description,
		CoverImage:  model.CoverImage,
		CategoryIDs: categoryIDs,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
