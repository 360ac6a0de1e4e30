package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-WaitlistService/internal/api/handlers"
)

const serviceTokenHeader = "X-Service-Token"

// ServiceAuth проверяет сервисный токен внутренних вызовов
// Движок не знает про "админов" и таблицы прав: авторизация сведена к одному
// факту "вызов авторизован", который устанавливает этот middleware
func ServiceAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(serviceTokenHeader)
			if provided == "" {
				handlers.RespondError(w, http.StatusUnauthorized, "отсутствует сервисный токен")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondError(w, http.StatusForbidden, "недействительный сервисный токен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
