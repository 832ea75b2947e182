package domain

import (
	"time"

	"github.com/google/uuid"
)

// Manufacturer - производитель автомобилей
// Название уникально в пределах всей системы
type Manufacturer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String возвращает отображаемое имя: "<название> <страна>"
func (m *Manufacturer) String() string {
	return m.Name + " " + m.Country
}

// Validate проверяет обязательные поля
func (m *Manufacturer) Validate() error {
	verr := &ValidationError{Fields: map[string]string{}}
	if m.Name == "" {
		verr.Fields["name"] = "this field is required"
	}
	if m.Country == "" {
		verr.Fields["country"] = "this field is required"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
