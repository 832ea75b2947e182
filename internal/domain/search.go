package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// SearchFilter - единственный предикат поиска для списков:
// подстрока без учета регистра в "поле поиска" сущности
// (Driver.Username, Car.Model, Manufacturer.Name).
// И отдельный search endpoint, и параметр search у списка строят фильтр
// через NewSearchFilter, поэтому семантика у них одна.
type SearchFilter struct {
	Query string
}

// NewSearchFilter создает фильтр из строки запроса
func NewSearchFilter(query string) SearchFilter {
	return SearchFilter{Query: query}
}

// IsEmpty - пустой запрос означает "все записи"
func (f SearchFilter) IsEmpty() bool {
	return f.Query == ""
}

// Matches проверяет поле в памяти (используется in-memory хранилищем)
func (f SearchFilter) Matches(field string) bool {
	if f.IsEmpty() {
		return true
	}
	folder := cases.Fold()
	return strings.Contains(folder.String(field), folder.String(f.Query))
}
