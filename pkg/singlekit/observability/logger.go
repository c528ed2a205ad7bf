package observability

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NewInstanceID returns a unique ID for tagging one created instance in
// log events.
func NewInstanceID() string {
	return uuid.NewString()
}

// LogCreation logs a successful instance creation.
func LogCreation(logger *slog.Logger, variant, typ, instanceID string, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("instance created",
		slog.String("variant", variant),
		slog.String("type", typ),
		slog.String("instance_id", instanceID),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000.0),
	)
}

// LogFactoryError logs a failed creation attempt.
func LogFactoryError(logger *slog.Logger, variant, typ string, err error) {
	if logger == nil {
		return
	}
	logger.Error("instance creation failed",
		slog.String("variant", variant),
		slog.String("type", typ),
		slog.String("error", err.Error()),
	)
}

// LogReset logs an explicit reset, removal, or clear.
func LogReset(logger *slog.Logger, variant, typ string) {
	if logger == nil {
		return
	}
	logger.Debug("instance reset",
		slog.String("variant", variant),
		slog.String("type", typ),
	)
}
