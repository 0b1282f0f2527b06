package book

import "strings"

// Filter 图书列表过滤条件（多个条件同时生效，取交集）
type Filter struct {
	Category string // 分类，忽略大小写精确匹配
	Author   string // 作者，忽略大小写子串匹配
	Search   string // 关键词，忽略大小写匹配标题或描述
}

// Matches 判断图书是否满足过滤条件
func (f Filter) Matches(b *Book) bool {
	if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
		return false
	}
	if f.Author != "" && !containsFold(b.Author, f.Author) {
		return false
	}
	if f.Search != "" && !containsFold(b.Title, f.Search) && !containsFold(b.Description, f.Search) {
		return false
	}
	return true
}

// Apply 过滤图书列表，保持原有顺序
func (f Filter) Apply(books []*Book) []*Book {
	result := make([]*Book, 0, len(books))
	for _, b := range books {
		if f.Matches(b) {
			result = append(result, b)
		}
	}
	return result
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
