package user

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordScheme 密码存储与比对方式
// 说明：凭证比较只通过这个接口进行，切换到哈希存储时调用方无需改动
type PasswordScheme interface {
	// Hash 返回写入存储的密码形式
	Hash(plain string) (string, error)

	// Verify 比对存储的密码与用户输入
	Verify(stored, plain string) bool
}

// PlaintextScheme 明文存储（默认）
// 注意：这是演示数据的兼容模式，密码以明文写入users文档
type PlaintextScheme struct{}

// Hash 原样返回
func (PlaintextScheme) Hash(plain string) (string, error) {
	return plain, nil
}

// Verify 常量时间比较，避免按耗时推测密码
func (PlaintextScheme) Verify(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

// BcryptScheme bcrypt哈希存储
// 学习要点：
// - bcrypt自动加盐，相同密码每次哈希结果都不同
// - cost每+1耗时翻倍，12是比较常用的取值
type BcryptScheme struct {
	Cost int
}

// NewBcryptScheme 创建bcrypt方案，cost为0时使用默认值12
func NewBcryptScheme(cost int) BcryptScheme {
	if cost == 0 {
		cost = 12
	}
	return BcryptScheme{Cost: cost}
}

// Hash bcrypt加密
func (s BcryptScheme) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify 校验bcrypt哈希
// 存储的值不是合法哈希（例如明文种子数据）时一律视为不匹配
func (s BcryptScheme) Verify(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
