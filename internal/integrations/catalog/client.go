package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/EMS-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client HTTP-клиент внешнего каталога оборудования
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// UnitsResponse модель ответа каталога со списком единиц категории
type UnitsResponse struct {
	CategoryID int64  `json:"categoryId"`
	Units      []Unit `json:"units"`
}

// Unit модель единицы оборудования из каталога
type Unit struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	TypeID     int64  `json:"typeId"`
	Label      string `json:"label"`
	Quantity   int    `json:"quantity"`
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUnitsByCategory получает пул единиц оборудования для категории
func (c *Client) GetUnitsByCategory(ctx context.Context, categoryID int64) ([]*domain.EquipmentUnit, error) {
	requestURL := fmt.Sprintf("%s/api/v1/equipment-categories/%d/units", c.baseURL, categoryID)

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
	case http.StatusNotFound:
		return nil, ErrCategoryNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payload UnitsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	units := make([]*domain.EquipmentUnit, 0, len(payload.Units))
	for _, u := range payload.Units {
		units = append(units, &domain.EquipmentUnit{
			ID:         u.ID,
			CategoryID: u.CategoryID,
			TypeID:     u.TypeID,
			Label:      u.Label,
			Quantity:   u.Quantity,
		})
	}

	return units, nil
}
