package build_candidates

import (
	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// Request модель запроса сборки набора кандидатов для сессии подбора
type Request struct {
	SessionID   string // ID сессии подбора
	RequesterID int64  // ID пользователя, запрашивающего сборку
}

// Response модель ответа со свежим набором кандидатов
type Response struct {
	Generation uint64             // Поколение фильтров, для которого собран набор
	CategoryID int64              // Категория оборудования (0 - категория не выбрана)
	Candidates []domain.Candidate // Кандидаты после пост-фильтрации
}
