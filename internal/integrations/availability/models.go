package availability

// AvailabilityResponse модель ответа сервиса доступности
type AvailabilityResponse struct {
	UnitID            int64 `json:"unitId"`
	TotalQuantity     int   `json:"totalQuantity"`
	AvailableQuantity int   `json:"availableQuantity"`
}

// ErrorResponse модель ошибки от сервиса доступности
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
