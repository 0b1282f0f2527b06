package book

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Attributes 创建/更新图书时的原始字段
// 说明：前端提交的JSON字段类型并不严格(price可能是"12.50",stock可能是"3"),
// 所以这里保留原始值，由领域层统一做类型转换
type Attributes map[string]interface{}

// 字段名（与JSON字段一致）
const (
	AttrID              = "id"
	AttrTitle           = "title"
	AttrAuthor          = "author"
	AttrISBN            = "isbn"
	AttrPrice           = "price"
	AttrCategory        = "category"
	AttrDescription     = "description"
	AttrPublicationYear = "publicationYear"
	AttrPublisher       = "publisher"
	AttrStock           = "stock"
	AttrCoverImage      = "coverImage"
)

// Has 字段是否出现在请求中（值为null也算出现）
func (a Attributes) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String 以字符串形式读取字段，null或缺失返回空串
func (a Attributes) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}

// truthy 判断字段是否"有值"
// 与前端表单的语义一致：null、空串、0、false都视为未填写
func (a Attributes) truthy(key string) bool {
	switch v := a[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	default:
		return true
	}
}

// blank 字段缺失、为null或为空串
func (a Attributes) blank(key string) bool {
	v, ok := a[key]
	if !ok || v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && strings.TrimSpace(s) == ""
}

// parsePrice 转换价格（支持数字和数字字符串）
func parsePrice(v interface{}) (float64, error) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	price, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrice
	}
	if price < 0 {
		return 0, ErrNegativePrice
	}
	return price, nil
}

// parseStock 转换库存（小数按整数截断）
func parseStock(v interface{}) (int, error) {
	stock, err := toInt(v)
	if err != nil {
		return 0, ErrInvalidStock
	}
	if stock < 0 {
		return 0, ErrNegativeStock
	}
	return stock, nil
}

// parseYear 转换出版年份
func parseYear(v interface{}) (*int, error) {
	year, err := toInt(v)
	if err != nil {
		return nil, ErrInvalidPublicationYear
	}
	return &year, nil
}

func toInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case string:
		x = strings.TrimSpace(x)
		// "12.0"这类字符串先按浮点数解析再截断
		if f, err := cast.ToFloat64E(x); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f), nil
		}
		return cast.ToIntE(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrInvalidStock
		}
		return int(x), nil
	default:
		return cast.ToIntE(v)
	}
}

// newBookFromAttributes 根据创建请求构造图书
// 规则：
// 1. title、author、isbn、price必填（空串、0视为未填）
// 2. category默认Uncategorized,description/publisher/coverImage默认空串
// 3. stock默认0,publicationYear未填为null
func newBookFromAttributes(a Attributes) (*Book, error) {
	if !a.truthy(AttrTitle) || !a.truthy(AttrAuthor) || !a.truthy(AttrISBN) || !a.truthy(AttrPrice) {
		return nil, ErrMissingFields
	}

	price, err := parsePrice(a[AttrPrice])
	if err != nil {
		return nil, err
	}

	b := &Book{
		Title:       a.String(AttrTitle),
		Author:      a.String(AttrAuthor),
		ISBN:        a.String(AttrISBN),
		Price:       price,
		Category:    DefaultCategory,
		Description: a.String(AttrDescription),
		Publisher:   a.String(AttrPublisher),
		CoverImage:  a.String(AttrCoverImage),
	}

	if a.truthy(AttrCategory) {
		b.Category = a.String(AttrCategory)
	}

	if a.truthy(AttrStock) {
		if b.Stock, err = parseStock(a[AttrStock]); err != nil {
			return nil, err
		}
	}

	if a.truthy(AttrPublicationYear) {
		if b.PublicationYear, err = parseYear(a[AttrPublicationYear]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// applyAttributes 将部分字段合并到图书上（原地修改，调用方应传入副本）
// 规则：
// 1. id不可修改，请求中的id被忽略；未知字段被忽略
// 2. 出现的字符串字段直接覆盖（包括空串）
// 3. price/stock为null或空串时保留原值，否则重新转换
// 4. publicationYear为null或空串时清空
func applyAttributes(b *Book, a Attributes) error {
	stringFields := map[string]*string{
		AttrTitle:       &b.Title,
		AttrAuthor:      &b.Author,
		AttrISBN:        &b.ISBN,
		AttrCategory:    &b.Category,
		AttrDescription: &b.Description,
		AttrPublisher:   &b.Publisher,
		AttrCoverImage:  &b.CoverImage,
	}
	for key, field := range stringFields {
		if a.Has(key) {
			*field = a.String(key)
		}
	}

	if a.Has(AttrPrice) && !a.blank(AttrPrice) {
		price, err := parsePrice(a[AttrPrice])
		if err != nil {
			return err
		}
		b.Price = price
	}

	if a.Has(AttrStock) && !a.blank(AttrStock) {
		stock, err := parseStock(a[AttrStock])
		if err != nil {
			return err
		}
		b.Stock = stock
	}

	if a.Has(AttrPublicationYear) {
		if a.blank(AttrPublicationYear) {
			b.PublicationYear = nil
		} else {
			year, err := parseYear(a[AttrPublicationYear])
			if err != nil {
				return err
			}
			b.PublicationYear = year
		}
	}

	return nil
}
