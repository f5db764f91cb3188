package models

import (
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// Request модели

// CreateSessionRequest запрос на создание сессии подбора.
// FromReservationID заполняется при редактировании существующего
// бронирования - сессия наследует его фильтры и состав единиц.
type CreateSessionRequest struct {
	RequesterID       int64  `json:"requesterId"`
	FromReservationID *int64 `json:"fromReservationId,omitempty"`
}

// SetFiltersRequest запрос на изменение фильтров сессии.
// Каждое ненулевое поле перезаписывает текущее значение.
type SetFiltersRequest struct {
	RequesterID int64   `json:"requesterId"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
	Date        *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime   *string `json:"startTime,omitempty"` // "10:00"
	EndTime     *string `json:"endTime,omitempty"`   // "12:00"
}

// AddUnitRequest запрос на добавление единицы в выбор
type AddUnitRequest struct {
	RequesterID int64 `json:"requesterId"`
	UnitID      int64 `json:"unitId"`
}

// RemoveUnitRequest запрос на удаление единицы из выбора
type RemoveUnitRequest struct {
	RequesterID int64 `json:"requesterId"`
	UnitID      int64 `json:"unitId"`
}

// Response модели

// SelectionEntryResponse одна выбранная единица
type SelectionEntryResponse struct {
	UnitID    int64  `json:"unitId"`
	TypeID    int64  `json:"typeId"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// SessionResponse ответ с состоянием сессии подбора
type SessionResponse struct {
	ID          string `json:"id"`
	RequesterID int64  `json:"requesterId"`

	CategoryID int64  `json:"categoryId,omitempty"`
	Date       string `json:"date,omitempty"`      // "2025-10-15"
	StartTime  string `json:"startTime,omitempty"` // "10:00"
	EndTime    string `json:"endTime,omitempty"`   // "12:00"

	Selection []SelectionEntryResponse `json:"selection"`

	EditingReservationID *int64 `json:"editingReservationId,omitempty"`

	Generation uint64    `json:"generation"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.SelectionSession) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                   s.ID,
		RequesterID:          s.RequesterID,
		CategoryID:           s.CategoryID,
		StartTime:            s.Window.StartTime.String(),
		EndTime:              s.Window.EndTime.String(),
		Selection:            make([]SelectionEntryResponse, 0, len(s.Selection)),
		EditingReservationID: s.ExcludeReservationID,
		Generation:           s.Generation,
		ExpiresAt:            s.ExpiresAt,
	}

	if !s.Window.Date.IsZero() {
		resp.Date = s.Window.Date.Format(domain.DateFormat)
	}

	for _, entry := range s.Selection.Entries() {
		resp.Selection = append(resp.Selection, SelectionEntryResponse{
			UnitID:    entry.UnitID,
			TypeID:    entry.TypeID,
			Label:     entry.Label,
			Available: entry.Available,
		})
	}

	return resp
}
