package domain

import (
	"time"

	"github.com/google/uuid"
)

// Car - автомобиль таксопарка
// ВАЖНО: автомобиль всегда ссылается ровно на одного существующего производителя
type Car struct {
	ID             uuid.UUID   `json:"id"`
	Model          string      `json:"model"`
	ManufacturerID uuid.UUID   `json:"manufacturer_id"`
	IsAssigned     bool        `json:"is_assigned"`
	DriverIDs      []uuid.UUID `json:"driver_ids,omitempty"` // nil - набор водителей не трогаем
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	// Связанные данные (не хранятся в таблице cars)
	Manufacturer *Manufacturer `json:"manufacturer,omitempty"`
	Drivers      []*Driver     `json:"drivers,omitempty"`
}

// String возвращает отображаемое имя - название модели
func (c *Car) String() string {
	return c.Model
}

// ToggleAssigned инвертирует флаг is_assigned и возвращает новое значение
func (c *Car) ToggleAssigned() bool {
	c.IsAssigned = !c.IsAssigned
	return c.IsAssigned
}

// Validate проверяет обязательные поля
func (c *Car) Validate() error {
	verr := &ValidationError{Fields: map[string]string{}}
	if c.Model == "" {
		verr.Fields["model"] = "this field is required"
	}
	if c.ManufacturerID == uuid.Nil {
		verr.Fields["manufacturer_id"] = "this field is required"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// UniqueDriverIDs убирает повторы, сохраняя порядок: водитель входит в набор не более одного раза
func UniqueDriverIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
