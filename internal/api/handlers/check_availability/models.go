package check_availability

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/EMS-ReservationService/internal/usecase/check_availability"
	"github.com/m04kA/EMS-ReservationService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	UnitID            int64 `json:"unitId"`
	TotalQuantity     int   `json:"totalQuantity"`
	AvailableQuantity int   `json:"availableQuantity"`
	Available         bool  `json:"available"`
}

// ParseQuery разбирает query-параметры в модель use case
func ParseQuery(unitID int64, query url.Values) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(query.Get("endTime"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		UnitID:    unitID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}

	if raw := query.Get("excludeReservationId"); raw != "" {
		excludeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ExcludeReservationID = &excludeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		UnitID:            resp.UnitID,
		TotalQuantity:     resp.TotalQuantity,
		AvailableQuantity: resp.AvailableQuantity,
		Available:         resp.Available,
	}
}
