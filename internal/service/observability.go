package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// UseCaseObserverFunc adapts a function to UseCaseObserver.
type UseCaseObserverFunc func(ctx context.Context, event UseCaseEvent)

func (f UseCaseObserverFunc) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	f(ctx, event)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// observers fans an event out in registration order.
type observers []UseCaseObserver

func (o observers) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range o {
		obs.ObserveUseCase(ctx, event)
	}
}

// NewLogUseCaseObserver logs each event to logger. Successes go to Debug,
// rejected input and unknown IDs to Info, anything else to Error.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return UseCaseObserverFunc(func(_ context.Context, e UseCaseEvent) {
		fields := []zap.Field{
			zap.String("use_case", e.Name),
			zap.Duration("took", e.Duration),
		}
		for k, v := range e.Fields {
			fields = append(fields, zap.Any(k, v))
		}
		level := zapcore.DebugLevel
		if e.Err != nil {
			fields = append(fields, zap.Error(e.Err))
			level = errorLevel(e.Err)
		}
		logger.Log(level, "use case finished", fields...)
	})
}

func errorLevel(err error) zapcore.Level {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
		return zapcore.InfoLevel
	}
	return zapcore.ErrorLevel
}
