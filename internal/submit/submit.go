// Package submit отправляет готовую заявку из виджета на сервер.
//
// Повторов и таймаутов нет: заявка уходит один раз, результат виден
// только в логе разработчика.
package submit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
)

// ErrNetwork — сервер недоступен или ответил не 2xx.
var ErrNetwork = errors.New("booking submission failed")

// Submitter делает одну попытку доставки заявки.
type Submitter interface {
	Submit(ctx context.Context, p booking.Payload) (booking.Ack, error)
}

// Dispatch отправляет заявку и только логирует исход. Посетителю ошибка не показывается.
func Dispatch(ctx context.Context, s Submitter, p booking.Payload, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ack, err := s.Submit(ctx, p)
	if err != nil {
		logger.Error("booking submission failed",
			zap.String("selected_time", p.SelectedTime),
			zap.Int("day", p.DaySelection.Day),
			zap.Int("month", int(p.DaySelection.Month)),
			zap.Int("year", p.DaySelection.Year),
			zap.Error(err),
		)
		return
	}

	logger.Info("booking submitted",
		zap.String("id", ack.ID),
		zap.Time("created_at", ack.CreatedAt),
	)
}
