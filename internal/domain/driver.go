package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Driver - водитель и одновременно учетная запись для входа в систему
type Driver struct {
	ID            uuid.UUID  `json:"id"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"` // Никогда не возвращаем в JSON
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	LicenseNumber string     `json:"license_number"`
	IsActive      bool       `json:"is_active"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Связанные данные (заполняются только для детального просмотра)
	Cars []*Car `json:"cars,omitempty"`
}

// String возвращает отображаемое имя: "<username> (<имя> <фамилия>)"
func (d *Driver) String() string {
	return fmt.Sprintf("%s (%s %s)", d.Username, d.FirstName, d.LastName)
}

// AbsoluteURL возвращает канонический адрес детальной страницы водителя
func (d *Driver) AbsoluteURL() string {
	return fmt.Sprintf("/drivers/%s/", d.ID)
}

// Validate проверяет обязательные поля
func (d *Driver) Validate() error {
	verr := &ValidationError{Fields: map[string]string{}}
	if d.Username == "" {
		verr.Fields["username"] = "this field is required"
	}
	if d.LicenseNumber == "" {
		verr.Fields["license_number"] = "this field is required"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
