package create_reservation

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия подбора не найдена или истекла
	ErrSessionNotFound = errors.New("create_reservation: selection session not found")

	// ErrEmptySelection возвращается, когда в сессии не выбрано ни одной единицы
	ErrEmptySelection = errors.New("create_reservation: selection is empty")

	// ErrIncompleteFilters возвращается, когда тип или окно не заданы полностью
	ErrIncompleteFilters = errors.New("create_reservation: filters are incomplete")

	// ErrUnitNotAvailable возвращается, когда единица оказалась занята
	// на момент фиксации (перепроверка внутри транзакции)
	ErrUnitNotAvailable = errors.New("create_reservation: unit is no longer available")

	// ErrReservationNotFound возвращается, когда редактируемое бронирование не найдено
	ErrReservationNotFound = errors.New("create_reservation: reservation not found")

	// ErrAccessDenied возвращается при попытке изменить чужое бронирование
	ErrAccessDenied = errors.New("create_reservation: access denied")

	// ErrNotEditable возвращается, когда бронирование уже нельзя изменить
	ErrNotEditable = errors.New("create_reservation: reservation can not be updated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
