package domain

// DateFormat is the wire and storage format for calendar dates
const DateFormat = "2006-01-02" // YYYY-MM-DD

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// InactiveStatuses список статусов неактивных бронирований.
// Используется для фильтрации при подсчёте доступности оборудования.
var InactiveStatuses = []ReservationStatus{
	StatusCancelledByRequester,
	StatusCancelledByAdmin,
	StatusRejected,
}
