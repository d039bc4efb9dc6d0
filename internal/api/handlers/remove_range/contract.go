package remove_range

import (
	"context"

	"github.com/m04kA/Blane-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	RemoveRange(ctx context.Context, offerID int64, index int) (*models.RangesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
