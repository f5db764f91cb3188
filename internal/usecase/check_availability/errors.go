package check_availability

import "errors"

var (
	// ErrUnitNotFound возвращается, когда единица оборудования не найдена
	ErrUnitNotFound = errors.New("check_availability: unit not found")

	// ErrInvalidWindow возвращается, когда конец окна не позже начала.
	// Проверяется до обращения к хранилищу - некорректное окно не порождает запросов.
	ErrInvalidWindow = errors.New("check_availability: invalid time window")

	// ErrIncompleteWindow возвращается, когда окно задано не полностью
	ErrIncompleteWindow = errors.New("check_availability: incomplete time window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
