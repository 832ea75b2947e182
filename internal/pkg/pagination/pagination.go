// Package pagination - постраничный вывод отфильтрованных списков
package pagination

import (
	"context"
	"fmt"
	"strconv"

	"github.com/frontandrew/taxi/internal/domain"
)

const (
	// DefaultPageSize - размер страницы списков по умолчанию
	DefaultPageSize = 5

	// LastPage - значение параметра page для последней страницы
	LastPage = "last"
)

// Source - отфильтрованная коллекция, которую можно посчитать и прочитать срезом.
// Репозитории сущностей реализуют этот интерфейс.
type Source[T any] interface {
	Count(ctx context.Context, filter domain.SearchFilter) (int64, error)
	List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]T, error)
}

// Page - одна страница коллекции с метаданными
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalRows   int64 `json:"total_rows"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	IsPaginated bool  `json:"is_paginated"`
}

// TotalPages возвращает количество страниц; у пустой коллекции одна страница
func TotalPages(totalRows int64, pageSize int) int {
	if totalRows <= 0 {
		return 1
	}
	size := int64(pageSize)
	return int((totalRows + size - 1) / size)
}

// ResolvePage переводит параметр page в номер страницы.
// Пустое значение - первая страница, "last" - последняя.
// Все остальное, кроме номера из [1, totalPages], - ErrPageNotFound.
func ResolvePage(raw string, totalPages int) (int, error) {
	switch raw {
	case "":
		return 1, nil
	case LastPage:
		return totalPages, nil
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 || number > totalPages {
		return 0, domain.ErrPageNotFound
	}
	return number, nil
}

// List возвращает страницу page коллекции src, отфильтрованной filter
func List[T any](ctx context.Context, src Source[T], filter domain.SearchFilter, page string, pageSize int) (*Page[T], error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total, err := src.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count: %w", err)
	}

	totalPages := TotalPages(total, pageSize)
	current, err := ResolvePage(page, totalPages)
	if err != nil {
		return nil, err
	}

	items, err := src.List(ctx, filter, pageSize, (current-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list: %w", err)
	}
	if items == nil {
		items = make([]T, 0)
	}

	return &Page[T]{
		Items:       items,
		CurrentPage: current,
		PageSize:    pageSize,
		TotalRows:   total,
		TotalPages:  totalPages,
		HasNext:     current < totalPages,
		HasPrevious: current > 1,
		IsPaginated: totalPages > 1,
	}, nil
}
