package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/metrics"
)

// maxResponseSize ограничение размера читаемого ответа
const maxResponseSize = 1 << 20

// Client клиент для работы с API каталога услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
// rps и burst задают ограничение исходящих запросов
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

// WithMetrics включает замер длительности запросов
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.metrics = m
	return c
}

// GetService получает детальную информацию об услуге
func (c *Client) GetService(ctx context.Context, serviceID string) (*domain.ServiceDetails, error) {
	path := fmt.Sprintf("/services/%s", url.PathEscape(serviceID))

	var service Service
	if err := c.do(ctx, "get_service", http.MethodGet, path, nil, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	details, err := service.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: service id=%s: %v", ErrInvalidResponse, serviceID, err)
	}
	return details, nil
}

// GetMonthlyAvailability получает занятые даты услуги за месяц
func (c *Client) GetMonthlyAvailability(ctx context.Context, serviceID string, year int, month time.Month) (domain.BookedDateSet, error) {
	query := url.Values{}
	query.Set("month", strconv.Itoa(int(month)))
	query.Set("year", strconv.Itoa(year))
	path := fmt.Sprintf("/services/%s/availability?%s", url.PathEscape(serviceID), query.Encode())

	var raw map[string]bool
	if err := c.do(ctx, "get_availability", http.MethodGet, path, nil, &raw, ErrServiceNotFound); err != nil {
		return nil, err
	}

	booked := make(domain.BookedDateSet, len(raw))
	for key, isBooked := range raw {
		d, err := parseDate(key)
		if err != nil {
			return nil, fmt.Errorf("%w: availability key %q: %v", ErrInvalidResponse, key, err)
		}
		booked[domain.DateKey(d)] = isBooked
	}
	return booked, nil
}

// Reserve создает временный резерв диапазона дат
func (c *Client) Reserve(ctx context.Context, serviceID string, start, end time.Time) (*domain.ReservationHold, error) {
	path := fmt.Sprintf("/services/%s/bookings/reserve", url.PathEscape(serviceID))
	body := ReserveRequest{
		StartDate: domain.DateKey(start),
		EndDate:   domain.DateKey(end),
	}

	c.log.Info("Reserve: service=%s, start=%s, end=%s", serviceID, body.StartDate, body.EndDate)

	var hold Hold
	if err := c.do(ctx, "reserve", http.MethodPost, path, body, &hold, ErrServiceNotFound); err != nil {
		return nil, err
	}
	return c.holdToDomain(&hold, serviceID)
}

// Confirm подтверждает резерв
func (c *Client) Confirm(ctx context.Context, serviceID, reservationID string) (*domain.ReservationHold, error) {
	path := fmt.Sprintf("/services/%s/bookings/%s/confirm", url.PathEscape(serviceID), url.PathEscape(reservationID))

	c.log.Info("Confirm: service=%s, reservation=%s", serviceID, reservationID)

	var hold Hold
	if err := c.do(ctx, "confirm", http.MethodPatch, path, nil, &hold, ErrReservationNotFound); err != nil {
		return nil, err
	}
	return c.holdToDomain(&hold, serviceID)
}

// Cancel отменяет резерв
func (c *Client) Cancel(ctx context.Context, reservationID string) error {
	path := fmt.Sprintf("/bookings/%s", url.PathEscape(reservationID))

	c.log.Info("Cancel: reservation=%s", reservationID)

	return c.do(ctx, "cancel", http.MethodDelete, path, nil, nil, ErrReservationNotFound)
}

func (c *Client) holdToDomain(hold *Hold, serviceID string) (*domain.ReservationHold, error) {
	if hold.ServiceID == "" {
		hold.ServiceID = serviceID
	}
	result, err := hold.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: hold: %v", ErrInvalidResponse, err)
	}
	return result, nil
}

// do выполняет запрос и разбирает конверт {success, message, data}
// notFound - ошибка, соответствующая 404 для данной операции
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}, notFound error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "error", start)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()
	c.observe(op, strconv.Itoa(resp.StatusCode), start)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < http.StatusBadRequest {
			return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
		}
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", notFound, env.Message)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, env.Message)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrRejected, env.Message)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, messageOrBody(env, raw))
	}

	// Cancel может вернуть пустое тело
	if out == nil && len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if !env.Success {
		return fmt.Errorf("%w: success=false: %s", ErrInvalidResponse, env.Message)
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: empty data", ErrInvalidResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: failed to decode data: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) observe(op, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.CatalogRequestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}

func messageOrBody(env envelope, raw []byte) string {
	if env.Message != "" {
		return env.Message
	}
	return string(raw)
}

// IsNotFound возвращает true для ошибок "не найдено" любого вида
func IsNotFound(err error) bool {
	return errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrReservationNotFound)
}
