package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceAuth(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	protected := ServiceAuth("secret-token")(next)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "secret-token", http.StatusOK, true},
		{"missing token", "", http.StatusUnauthorized, false},
		{"wrong token", "wrong", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist/check-availability", nil)
			if tt.token != "" {
				req.Header.Set("X-Service-Token", tt.token)
			}

			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}
