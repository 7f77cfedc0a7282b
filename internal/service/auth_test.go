package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/pj-ledger-go/internal/domain"
	"github.com/boddenberg/pj-ledger-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T, password string) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return service.NewAuthService(string(hash), "test-secret", time.Minute, zap.NewNop())
}

func TestAuth_IssueAndValidate(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	resp, err := svc.IssueToken(context.Background(), "s3cret")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected a token")
	}

	subject, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if subject != "operator" {
		t.Errorf("expected subject 'operator', got %q", subject)
	}
}

func TestAuth_WrongPassword(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	_, err := svc.IssueToken(context.Background(), "wrong")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuth_NotConfigured(t *testing.T) {
	svc := service.NewAuthService("", "test-secret", time.Minute, zap.NewNop())

	_, err := svc.IssueToken(context.Background(), "anything")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	svc := newAuthService(t, "s3cret")

	_, err := svc.ValidateAccessToken("not.a.token")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
