package mailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с внешним сервисом рассылки писем
// Отправка писем - side effect вне этого сервиса: клиент только передает
// содержимое и сообщает, принято ли письмо к отправке
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса рассылки
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendAvailabilityNotice отправляет письмо "появилось место" клиенту из листа ожидания
// Ошибка отправки означает, что запись листа ожидания должна остаться в pending
func (c *Client) SendAvailabilityNotice(ctx context.Context, notice *AvailabilityNotice) error {
	url := fmt.Sprintf("%s/internal/mail/availability-notice", c.baseURL)

	if err := c.send(ctx, url, notice); err != nil {
		c.log.Warn("SendAvailabilityNotice: entry_id=%d, email=%s: %v",
			notice.WaitlistEntryID, notice.RecipientEmail, err)
		return err
	}

	c.log.Info("SendAvailabilityNotice: sent to %s for entry_id=%d",
		notice.RecipientEmail, notice.WaitlistEntryID)
	return nil
}

// SendBookingConfirmation отправляет подтверждение бронирования
// Вызывается best-effort: ошибка отправки не откатывает созданное бронирование
func (c *Client) SendBookingConfirmation(ctx context.Context, confirmation *BookingConfirmation) error {
	url := fmt.Sprintf("%s/internal/mail/booking-confirmation", c.baseURL)

	if err := c.send(ctx, url, confirmation); err != nil {
		c.log.Warn("SendBookingConfirmation: booking_id=%d, email=%s: %v",
			confirmation.BookingID, confirmation.RecipientEmail, err)
		return err
	}

	c.log.Info("SendBookingConfirmation: sent to %s for booking_id=%d",
		confirmation.RecipientEmail, confirmation.BookingID)
	return nil
}

func (c *Client) send(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	// Идемпотентность на стороне сервиса рассылки: повтор с тем же ID не дублирует письмо
	req.Header.Set("X-Message-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrSendFailed, resp.StatusCode, string(respBody))
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrSendFailed, result.Error)
	}

	return nil
}
