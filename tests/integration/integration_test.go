package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/handler"
	"github.com/boddenberg/pj-ledger-go/internal/infra/cache"
	"github.com/boddenberg/pj-ledger-go/internal/infra/memstore"
	"github.com/boddenberg/pj-ledger-go/internal/infra/notify"
	"github.com/boddenberg/pj-ledger-go/internal/infra/observability"
	"github.com/boddenberg/pj-ledger-go/internal/infra/resilience"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TestIntegration_FullFlow spins up a mock notification webhook and runs the
// account + transfer flow end to end through the HTTP surface.
func TestIntegration_FullFlow(t *testing.T) {
	// --- Mock notification webhook ---
	var mu sync.Mutex
	var notifications []domain.TransferNotification
	webhookServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n domain.TransferNotification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		notifications = append(notifications, n)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer webhookServer.Close()

	// --- Build services ---
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("test")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	notifier := notify.NewWebhook(httpClient, webhookServer.URL, cb, cfg, logger)
	ledgerSvc := service.NewLedgerService(memstore.New(), notifier, metrics, logger)

	hash, err := bcrypt.GenerateFromPassword([]byte("op-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	authSvc := service.NewAuthService(string(hash), "integration-secret", time.Minute, logger)

	router := handler.NewRouter(ledgerSvc, authSvc, cache.New[decimal.Decimal](50*time.Millisecond), metrics, logger)
	api := httptest.NewServer(router)
	defer api.Close()

	post := func(path string, body any) *http.Response {
		t.Helper()
		var buf bytes.Buffer
		json.NewEncoder(&buf).Encode(body)
		resp, err := http.Post(api.URL+path, "application/json", &buf)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		return resp
	}

	// --- Create accounts ---
	resp := post("/v1/accounts", map[string]any{"id": "ID-123", "balance": "123.45"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create ID-123: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = post("/v1/accounts", map[string]any{"id": "ID-456", "balance": "123.45"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create ID-456: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	// --- Transfer ---
	resp = post("/v1/transfers", map[string]any{
		"from_account_id": "ID-123",
		"to_account_id":   "ID-456",
		"amount":          "100",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("transfer: expected 201, got %d", resp.StatusCode)
	}
	var transferResp struct {
		From domain.Account `json:"from"`
		To   domain.Account `json:"to"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&transferResp); err != nil {
		t.Fatalf("decode transfer response: %v", err)
	}
	resp.Body.Close()

	if transferResp.From.Balance.String() != "23.45" {
		t.Errorf("expected from balance 23.45, got %s", transferResp.From.Balance)
	}
	if transferResp.To.Balance.String() != "223.45" {
		t.Errorf("expected to balance 223.45, got %s", transferResp.To.Balance)
	}

	// --- Both notifications delivered ---
	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(notifications)
		mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected 2 notifications, got %d", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// --- Total balance conserved ---
	balResp, err := http.Get(api.URL + "/v1/ledger/balance")
	if err != nil {
		t.Fatalf("GET balance: %v", err)
	}
	var snapshot domain.LedgerSnapshot
	if err := json.NewDecoder(balResp.Body).Decode(&snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	balResp.Body.Close()
	if snapshot.TotalBalance.String() != "246.90" && snapshot.TotalBalance.String() != "246.9" {
		t.Errorf("expected total 246.90, got %s", snapshot.TotalBalance)
	}
}
