// Package notify provides Notifier adapters for transfer notifications.
// The ledger treats delivery as fire-and-forget: adapters report failures,
// the coordinator only logs them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Webhook delivers transfer notifications by POSTing JSON to a configured
// endpoint, with retry, circuit breaking and a concurrency cap.
type Webhook struct {
	httpClient *http.Client
	url        string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewWebhook creates a webhook notifier.
func NewWebhook(httpClient *http.Client, url string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Webhook {
	return &Webhook{
		httpClient: httpClient,
		url:        url,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:        cfg,
		logger:     logger,
	}
}

// NotifyAboutTransfer posts the notification payload to the webhook.
func (w *Webhook) NotifyAboutTransfer(ctx context.Context, account domain.Account, message string) error {
	if err := w.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer w.bulkhead.Release()

	payload, err := json.Marshal(domain.TransferNotification{
		AccountID: account.ID,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = resilience.RetryWithBackoff(ctx, w.cfg, func() error {
		_, cbErr := w.cb.Execute(func() (any, error) {
			return nil, w.post(ctx, payload)
		})
		return cbErr
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return &domain.ErrCircuitOpen{Service: "notifier"}
		}
		return &domain.ErrExternalService{Service: "notifier", Err: err}
	}
	return nil
}

func (w *Webhook) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		w.logger.Warn("notifier: webhook returned non-success status",
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
