package mailservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailservice client: invalid response")

	// ErrSendFailed возвращается, когда сервис рассылки отклонил или не смог отправить письмо
	// Для записей листа ожидания эта ошибка означает "оставить запись в pending и повторить
	// при следующем триггере"
	ErrSendFailed = errors.New("mailservice client: send failed")
)
