package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidToken is returned when the backend rejects the session token
	ErrInvalidToken = errors.New("invalid or expired session token")
	// ErrNotConfigured is returned when the backend URL or key is missing
	ErrNotConfigured = errors.New("auth backend not configured")
)

// Principal is the authenticated identity resolved from a session token.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Verifier resolves a bearer token into a Principal.
type Verifier interface {
	VerifySession(ctx context.Context, token string) (*Principal, error)
}

// HTTPVerifier verifies sessions against the hosted auth backend. A fresh
// client is used per call; no retries, default transport timeouts.
type HTTPVerifier struct {
	baseURL string
	apiKey  string
}

// NewHTTPVerifier creates an HTTPVerifier. Both the backend URL and the
// public API key are required.
func NewHTTPVerifier(baseURL, apiKey string) (*HTTPVerifier, error) {
	if baseURL == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}
	return &HTTPVerifier{baseURL: baseURL, apiKey: apiKey}, nil
}

// VerifySession calls the backend session endpoint with the token as bearer
// credential. A backend-rejected token maps to ErrInvalidToken; transport and
// unexpected statuses surface as plain errors for the caller to classify.
func (v *HTTPVerifier) VerifySession(ctx context.Context, token string) (*Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("building verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling auth backend: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var p Principal
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("decoding session response: %w", err)
		}
		return &p, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("auth backend returned status %d", resp.StatusCode)
	}
}
