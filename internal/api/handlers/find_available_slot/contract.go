package find_available_slot

import (
	"context"

	findSlot "github.com/m04kA/SMC-WaitlistService/internal/usecase/find_slot"
)

type FindSlotUseCase interface {
	Execute(ctx context.Context, req *findSlot.Request) (*findSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
