package build_candidates

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия подбора не найдена или истекла
	ErrSessionNotFound = errors.New("build_candidates: selection session not found")

	// ErrAccessDenied возвращается при попытке собрать кандидатов для чужой сессии
	ErrAccessDenied = errors.New("build_candidates: access denied")

	// ErrPoolUnavailable возвращается, когда не удалось получить состав пула.
	// Деградация пула - ошибка всей сборки, а не пустой список кандидатов.
	ErrPoolUnavailable = errors.New("build_candidates: unit pool unavailable")

	// ErrStaleGeneration возвращается, когда фильтры сессии изменились
	// за время сборки и результат устарел
	ErrStaleGeneration = errors.New("build_candidates: candidate set is stale")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("build_candidates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("build_candidates: internal error")
)
