package notify

import (
	"context"

	"github.com/boddenberg/pj-ledger-go/internal/domain"

	"go.uber.org/zap"
)

// Log is the fallback Notifier used when no webhook URL is configured.
// It records the notification in the application log and never fails.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a log-backed notifier.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

// NotifyAboutTransfer logs the notification.
func (l *Log) NotifyAboutTransfer(_ context.Context, account domain.Account, message string) error {
	l.logger.Info("transfer notification",
		zap.String("account_id", account.ID),
		zap.String("message", message),
	)
	return nil
}
