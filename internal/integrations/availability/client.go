package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client HTTP-клиент внешнего сервиса доступности оборудования.
// Один запрос - одна единица оборудования; повторов нет, ошибка одного
// запроса трактуется вызывающей стороной как "единица недоступна".
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса доступности
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CheckUnit проверяет доступность единицы оборудования в запрошенном окне
func (c *Client) CheckUnit(ctx context.Context, q domain.AvailabilityQuery) (*domain.AvailabilityResult, error) {
	params := url.Values{}
	params.Set("date", q.Window.Date.Format(domain.DateFormat))
	params.Set("startTime", q.Window.StartTime.String())
	params.Set("endTime", q.Window.EndTime.String())
	if q.ExcludeReservationID != nil {
		params.Set("excludeReservationId", strconv.FormatInt(*q.ExcludeReservationID, 10))
	}

	requestURL := fmt.Sprintf("%s/api/v1/equipment-units/%d/availability?%s",
		c.baseURL, q.UnitID, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid availability query", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUnitNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payload AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &domain.AvailabilityResult{
		UnitID:            payload.UnitID,
		TotalQuantity:     payload.TotalQuantity,
		AvailableQuantity: payload.AvailableQuantity,
	}, nil
}
