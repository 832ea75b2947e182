package hash

import (
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost - стоимость хеширования по умолчанию (12)
	DefaultCost = 12

	// MaxPasswordBytes - предел длины пароля в bcrypt
	MaxPasswordBytes = 72
)

// Hasher хеширует и проверяет пароли водителей через bcrypt
type Hasher struct {
	cost int
}

// New создает Hasher; cost вне допустимого диапазона заменяется на DefaultCost
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash хеширует пароль
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check сравнивает хеш с plain-text паролем
func (h *Hasher) Check(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// IsTooLong сообщает, что пароль не поместится в bcrypt: лимит считается в байтах, а не в символах
func IsTooLong(password string) bool {
	return len(password) > MaxPasswordBytes
}
