package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the request id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of op when the returned func is called.
// Typical use: defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)
	reqID := RequestID(ctx)

	return func(errp *error) {
		ev := logger.Debug()
		if errp != nil && *errp != nil {
			ev = logger.Warn().Err(*errp)
		}
		ev.Str("req_id", reqID).
			Str("op", name).
			Int64("dur_ms", time.Since(start).Milliseconds()).
			Msg("operation finished")
	}
}
