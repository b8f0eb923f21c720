package notify

import (
	"context"

	"github.com/yndnr/tokgate/internal/telemetry/logger"
	"github.com/yndnr/tokgate/pkg/token"
)

// LogNotifier only logs that a token would have been sent. For development.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Default()
	}
	return &LogNotifier{log: log.With("component", "notify")}
}

// Deliver logs the recipient and the token fingerprint. It never fails.
func (l *LogNotifier) Deliver(ctx context.Context, recipient, tok string) error {
	l.log.WithContext(ctx).Info("token issued for delivery",
		"recipient", recipient,
		"token_fp", token.Fingerprint(tok),
	)
	return nil
}
