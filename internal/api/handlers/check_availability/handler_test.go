package check_availability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	processWaitlist "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
	"github.com/m04kA/SMC-WaitlistService/pkg/ptr"
	"github.com/m04kA/SMC-WaitlistService/pkg/types"
)

type mockUseCase struct {
	resp    *processWaitlist.Response
	err     error
	lastReq *processWaitlist.Request
}

func (m *mockUseCase) Execute(_ context.Context, req *processWaitlist.Request) (*processWaitlist.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist/check-availability",
		bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Converted(t *testing.T) {
	uc := &mockUseCase{
		resp: &processWaitlist.Response{
			Processed: 1,
			Message:   "запись конвертирована в подтвержденное бронирование",
			Entries: []processWaitlist.EntryResult{{
				EntryID:        7,
				Outcome:        processWaitlist.OutcomeConverted,
				BookingID:      ptr.Ptr(int64(100)),
				SlotID:         10,
				Date:           time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
				StartTime:      types.TimeString("18:00"),
				EndTime:        types.TimeString("20:00"),
				AvailableSeats: 3,
			}},
		},
	}
	handler := NewHandler(uc, nopLogger{})

	rec := doRequest(t, handler, `{"courseId": 1}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), uc.lastReq.CourseID)

	var resp CheckAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Processed)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "converted", resp.Entries[0].Outcome)
	require.NotNil(t, resp.Entries[0].BookingID)
	assert.Equal(t, int64(100), *resp.Entries[0].BookingID)
	assert.Equal(t, "2026-01-06", resp.Entries[0].Date)
	assert.Equal(t, "18:00", resp.Entries[0].StartTime)
}

func TestHandle_NothingProcessed(t *testing.T) {
	uc := &mockUseCase{
		resp: &processWaitlist.Response{
			Processed: 0,
			Message:   "лист ожидания пуст",
			Entries:   []processWaitlist.EntryResult{},
		},
	}
	handler := NewHandler(uc, nopLogger{})

	rec := doRequest(t, handler, `{"courseId": 1}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckAvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Processed)
	assert.Empty(t, resp.Entries)
}

func TestHandle_InvalidBody(t *testing.T) {
	handler := NewHandler(&mockUseCase{}, nopLogger{})

	assert.Equal(t, http.StatusBadRequest, doRequest(t, handler, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, handler, `{"unknownField": 1}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, handler, `{"courseId": 0}`).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"course not found", processWaitlist.ErrCourseNotFound, http.StatusNotFound},
		{"processing locked", processWaitlist.ErrProcessingLocked, http.StatusConflict},
		{"invalid input", processWaitlist.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", processWaitlist.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&mockUseCase{err: tt.err}, nopLogger{})
			rec := doRequest(t, handler, `{"courseId": 1}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
