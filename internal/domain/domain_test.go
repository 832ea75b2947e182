package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDisplayIdentity(t *testing.T) {
	m := &Manufacturer{Name: "Toyota", Country: "Japan"}
	assert.Equal(t, "Toyota Japan", m.String())

	d := &Driver{Username: "johndoe", FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "johndoe (John Doe)", d.String())

	c := &Car{Model: "Camry"}
	assert.Equal(t, "Camry", c.String())
}

func TestDriver_AbsoluteURL(t *testing.T) {
	id := uuid.New()
	d := &Driver{ID: id, Username: "johndoe"}
	assert.Equal(t, "/drivers/"+id.String()+"/", d.AbsoluteURL())
}

func TestCar_ToggleAssigned(t *testing.T) {
	c := &Car{Model: "Camry"}
	assert.False(t, c.IsAssigned)

	assert.True(t, c.ToggleAssigned())
	assert.True(t, c.IsAssigned)

	assert.False(t, c.ToggleAssigned())
	assert.False(t, c.IsAssigned)
}

func TestSearchFilter_Matches(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
		want  bool
	}{
		{"пустой запрос", "", "Camry", true},
		{"начало строки", "cam", "Camry", true},
		{"верхний регистр", "CAM", "Camry", true},
		{"середина строки", "rol", "Corolla", true},
		{"нет совпадения", "co", "Camry", false},
		{"юникод", "ШКО", "Шкода", true},
		{"длиннее поля", "camry xl", "Camry", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSearchFilter(tt.query).Matches(tt.field))
		})
	}
}

func TestValidate(t *testing.T) {
	err := (&Manufacturer{}).Validate()
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "country")
	assert.ErrorIs(t, err, ErrValidation)

	err = (&Car{Model: "Camry"}).Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "manufacturer_id")

	assert.NoError(t, (&Driver{Username: "johndoe", LicenseNumber: "AB12345"}).Validate())
}

func TestErrorKinds(t *testing.T) {
	assert.ErrorIs(t, ErrManufacturerNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrCarNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrManufacturerAlreadyExists, ErrUniqueViolation)
	assert.ErrorIs(t, ErrLicenseNumberTaken, ErrUniqueViolation)
	assert.ErrorIs(t, ErrManufacturerInUse, ErrIntegrityViolation)
	assert.NotErrorIs(t, ErrCarNotFound, ErrIntegrityViolation)
	assert.Equal(t, "car not found", ErrCarNotFound.Error())
}

func TestUniqueDriverIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, UniqueDriverIDs([]uuid.UUID{a, b, a}))
	assert.Nil(t, UniqueDriverIDs(nil))
	assert.Empty(t, UniqueDriverIDs([]uuid.UUID{}))
}
