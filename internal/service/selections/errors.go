package selections

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия подбора не найдена или истекла
	ErrSessionNotFound = errors.New("selection session not found")

	// ErrReservationNotFound возвращается, когда бронирование для редактирования не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrIncompleteFilters возвращается при попытке выбрать единицу
	// до полного задания типа и окна
	ErrIncompleteFilters = errors.New("filters are incomplete")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrFiltersChanged возвращается, когда фильтры сессии изменились,
	// пока шла проверка доступности, и результат проверки уже неприменим
	ErrFiltersChanged = errors.New("filters changed during availability check")

	// ErrUnitNotFound возвращается, когда единицы нет в пуле активного типа
	ErrUnitNotFound = errors.New("unit not found in active type pool")

	// ErrUnitNotAvailable возвращается при попытке выбрать занятую единицу
	ErrUnitNotAvailable = errors.New("unit is not available in the selected window")

	// ErrNotEditable возвращается, когда бронирование уже нельзя изменить
	ErrNotEditable = errors.New("reservation can not be updated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
