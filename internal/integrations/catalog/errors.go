package catalog

import "errors"

var (
	// ErrCategoryNotFound возвращается, когда категория оборудования не найдена
	ErrCategoryNotFound = errors.New("catalog client: equipment category not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalog client: invalid response")
)
