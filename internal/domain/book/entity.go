package book

// DefaultCategory 未指定分类时的默认值
const DefaultCategory = "Uncategorized"

// Book 图书实体（聚合根）
// DDD设计说明：
// 1. ID由目录服务分配（现有最大ID+1），不依赖存储层自增
// 2. ISBN是业务唯一标识，唯一性由领域服务在写入前校验
// 3. 价格按前端约定使用浮点数（元），库存为非负整数
// 4. PublicationYear允许为空（nil）
type Book struct {
	ID              int
	Title           string
	Author          string
	ISBN            string
	Price           float64
	Category        string
	Description     string
	PublicationYear *int
	Publisher       string
	Stock           int
	CoverImage      string
}

// Clone 深拷贝（PublicationYear是指针）
func (b *Book) Clone() *Book {
	c := *b
	if b.PublicationYear != nil {
		year := *b.PublicationYear
		c.PublicationYear = &year
	}
	return &c
}

// Value 库存货值 = 单价 × 库存
func (b *Book) Value() float64 {
	return b.Price * float64(b.Stock)
}

// nextID 计算下一个图书ID
// 规则：空目录从1开始，否则为现有最大ID+1（删除后的空洞不复用）
func nextID(books []*Book) int {
	maxID := 0
	for _, b := range books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

// indexOf 按ID查找下标，不存在返回-1
func indexOf(books []*Book, id int) int {
	for i, b := range books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
