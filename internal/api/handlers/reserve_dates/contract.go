package reserve_dates

import (
	"context"

	reserveDates "github.com/m04kA/SMC-ReservationEngine/internal/usecase/reserve_dates"
)

type ReserveDatesUseCase interface {
	Execute(ctx context.Context, req *reserveDates.Request) (*reserveDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
