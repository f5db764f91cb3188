package availability

import "errors"

var (
	// ErrUnitNotFound возвращается, когда единица оборудования не найдена
	ErrUnitNotFound = errors.New("availability client: unit not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availability client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("availability client: invalid response")
)
