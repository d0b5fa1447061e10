// Package dto HTTP层请求参数,包含binding校验tag
package dto

import "strings"

// PageQuery 分页参数,越界值由应用层修正(page从1开始,page_size最大100)
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// SplitValues 同时支持重复参数和逗号分隔: ?titles=a&titles=b,c
func SplitValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
