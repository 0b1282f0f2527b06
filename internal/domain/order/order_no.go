package order

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式：ORD + 时间戳（秒） + 6位随机数
// 示例：ORD1699248000123456
//
// 说明：下单时前端通常已生成orderId，这里只在缺省时兜底
func GenerateOrderNo(now time.Time) string {
	return fmt.Sprintf("ORD%d%06d", now.Unix(), rand.Intn(1000000))
}
