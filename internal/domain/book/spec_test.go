package book

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 字符串条件,便于断言组合顺序
func newStringBuilder(t *testing.T) *SpecificationBuilder[string] {
	t.Helper()
	b := NewSpecificationBuilder("TRUE", func(a, c string) string { return a + " AND " + c })
	for _, f := range SearchFields {
		field := f
		require.NoError(t, b.Register(field, func(values []string) string {
			return field + " IN (" + strings.Join(values, ",") + ")"
		}))
	}
	return b
}

func TestSpecificationBuilder_Register(t *testing.T) {
	b := NewSpecificationBuilder("", func(a, c string) string { return a + c })
	provider := func([]string) string { return "" }

	require.NoError(t, b.Register("title", provider))
	assert.ErrorIs(t, b.Register("title", provider), ErrInvalidSpecProvider)
	assert.ErrorIs(t, b.Register("  ", provider), ErrInvalidSpecProvider)
	assert.ErrorIs(t, b.Register("author", nil), ErrInvalidSpecProvider)

	assert.NoError(t, b.Require("title"))
	assert.ErrorIs(t, b.Require("title", "isbn"), ErrUnknownSearchField)
}

func TestSpecificationBuilder_Build(t *testing.T) {
	b := newStringBuilder(t)

	t.Run("空参数返回all", func(t *testing.T) {
		spec, err := b.Build(nil)
		require.NoError(t, err)
		assert.Equal(t, "TRUE", spec)

		spec, err = b.Build(SearchParams{"title": {" ", ""}})
		require.NoError(t, err)
		assert.Equal(t, "TRUE", spec)
	})

	t.Run("按字段名排序组合", func(t *testing.T) {
		params := SearchParams{
			"title":  {"Go"},
			"author": {"Rob", " Rob ", "Ken"},
			"isbn":   {"1"},
		}
		for i := 0; i < 10; i++ {
			spec, err := b.Build(params)
			require.NoError(t, err)
			assert.Equal(t, "TRUE AND author IN (Rob,Ken) AND isbn IN (1) AND title IN (Go)", spec)
		}
	})

	t.Run("未知字段", func(t *testing.T) {
		_, err := b.Build(SearchParams{"publisher": {"x"}})
		assert.ErrorIs(t, err, ErrUnknownSearchField)
		assert.Contains(t, err.Error(), "publisher")
	})

	t.Run("不修改原参数", func(t *testing.T) {
		params := SearchParams{"title": {" Go "}}
		_, err := b.Build(params)
		require.NoError(t, err)
		assert.Equal(t, []string{" Go "}, params["title"])
	})
}

// 搜索结果等于各字段匹配结果的交集,未提供的字段不做限制
func TestSpecificationBuilder_Intersection(t *testing.T) {
	type pred = func(*Book) bool
	b := NewSpecificationBuilder[pred](
		func(*Book) bool { return true },
		func(x, y pred) pred { return func(bk *Book) bool { return x(bk) && y(bk) } },
	)
	in := func(get func(*Book) string) SpecProvider[pred] {
		return func(values []string) pred {
			return func(bk *Book) bool {
				for _, v := range values {
					if get(bk) == v {
						return true
					}
				}
				return false
			}
		}
	}
	require.NoError(t, b.Register(FieldTitle, in(func(bk *Book) string { return bk.Title })))
	require.NoError(t, b.Register(FieldAuthor, in(func(bk *Book) string { return bk.Author })))
	require.NoError(t, b.Register(FieldISBN, in(func(bk *Book) string { return bk.ISBN })))

	price := decimal.NewFromInt(10)
	books := []*Book{
		NewBook("A", "X", "1111111111", price, "", "", nil),
		NewBook("B", "X", "2222222222", price, "", "", nil),
		NewBook("A", "Y", "3333333333", price, "", "", nil),
		NewBook("C", "Z", "4444444444", price, "", "", nil),
	}
	match := func(params SearchParams) []string {
		spec, err := b.Build(params)
		require.NoError(t, err)
		var isbns []string
		for _, bk := range books {
			if spec(bk) {
				isbns = append(isbns, bk.ISBN)
			}
		}
		return isbns
	}

	assert.Len(t, match(SearchParams{}), 4)
	assert.Equal(t, []string{"1111111111", "3333333333"}, match(SearchParams{FieldTitle: {"A"}}))
	assert.Equal(t, []string{"1111111111"}, match(SearchParams{FieldTitle: {"A"}, FieldAuthor: {"X"}}))
	assert.Equal(t, []string{"1111111111", "2222222222", "3333333333"},
		match(SearchParams{FieldTitle: {"A", "B"}, FieldAuthor: {"X", "Y"}}))
	assert.Empty(t, match(SearchParams{FieldTitle: {"a"}}), "匹配区分大小写")
}

func TestSearchParams_Normalize(t *testing.T) {
	got := SearchParams{
		"title":  {" Go ", "Go", ""},
		"author": {"  "},
	}.Normalize()

	assert.Equal(t, SearchParams{"title": {"Go"}}, got)
	assert.Equal(t, []string{"title"}, got.Fields())
	assert.True(t, SearchParams{"isbn": nil}.Normalize().IsEmpty())
}
