package check_availability

import (
	"time"

	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

// Request модель запроса проверки доступности одной единицы оборудования
type Request struct {
	UnitID               int64            // ID единицы оборудования
	Date                 time.Time        // Дата (без времени)
	StartTime            types.TimeString // Начало окна (включительно)
	EndTime              types.TimeString // Конец окна (не включительно)
	ExcludeReservationID *int64           // Бронирование, исключаемое из подсчёта (edit flow)
}

// Response модель ответа с результатом проверки
type Response struct {
	UnitID            int64 // ID единицы оборудования
	TotalQuantity     int   // Общее количество экземпляров
	AvailableQuantity int   // Свободные экземпляры в окне
	Available         bool  // AvailableQuantity > 0
}
