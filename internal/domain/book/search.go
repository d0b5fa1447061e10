package book

import (
	"sort"
	"strings"
)

// 可搜索字段
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldISBN   = "isbn"
)

// SearchFields 所有仓储实现都必须支持的搜索字段
var SearchFields = []string{FieldTitle, FieldAuthor, FieldISBN}

// SearchParams 搜索参数:字段名 → 候选值列表
// 同一字段的多个值是OR(IN),不同字段之间是AND
type SearchParams map[string][]string

// Normalize 去掉空白值和重复值,值列表为空的字段整体去掉
// 返回新的map,不修改原参数
func (p SearchParams) Normalize() SearchParams {
	out := make(SearchParams, len(p))
	for field, values := range p {
		seen := make(map[string]struct{}, len(values))
		kept := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			kept = append(kept, v)
		}
		if len(kept) > 0 {
			out[field] = kept
		}
	}
	return out
}

// Fields 按字典序返回字段名
func (p SearchParams) Fields() []string {
	fields := make([]string, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// IsEmpty 没有任何条件
func (p SearchParams) IsEmpty() bool {
	return len(p) == 0
}
