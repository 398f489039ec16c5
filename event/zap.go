package event

import (
	"go.uber.org/zap"
)

// NewZapListener logs every event at info level with its payload as a field.
func NewZapListener(log *zap.Logger) Listener {
	return ListenerFunc(func(e Event) {
		log.Info(e.Message,
			zap.String("event", e.Name),
			zap.Any("data", e.Data),
		)
	})
}
