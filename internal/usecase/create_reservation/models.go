package create_reservation

import (
	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// Request модель запроса фиксации сессии подбора в бронирование
type Request struct {
	SessionID   string  // ID сессии подбора
	RequesterID int64   // ID инициатора запроса
	Notes       *string // Комментарий к бронированию
}

// Response модель ответа с созданным или обновлённым бронированием
type Response struct {
	Reservation *domain.Reservation
}
