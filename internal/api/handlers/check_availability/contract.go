package check_availability

import (
	"context"

	processWaitlist "github.com/m04kA/SMC-WaitlistService/internal/usecase/process_waitlist"
)

type ProcessWaitlistUseCase interface {
	Execute(ctx context.Context, req *processWaitlist.Request) (*processWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
