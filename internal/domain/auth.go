package domain

import "time"

// ============================================================
// Auth (admin surface)
// ============================================================

// TokenRequest is the inbound payload for POST /v1/auth/token.
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse carries a signed operator access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
