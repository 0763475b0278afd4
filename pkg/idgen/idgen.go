package idgen

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

// Alphabet không có 0/O và 1/I để đọc qua điện thoại không nhầm
const readableAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Generator trả về một ID mới mỗi lần gọi
type Generator func() string

// NewReadable tạo generator uppercase dùng cho order number và promo code
func NewReadable(length int) (Generator, error) {
	gen, err := nanoid.CustomASCII(readableAlphabet, length)
	if err != nil {
		return nil, fmt.Errorf("create id generator: %w", err)
	}
	return Generator(gen), nil
}

// MustReadable panic nếu length không hợp lệ, dùng lúc wiring
func MustReadable(length int) Generator {
	gen, err := NewReadable(length)
	if err != nil {
		panic(err)
	}
	return gen
}
