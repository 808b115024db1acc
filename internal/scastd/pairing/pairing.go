// Package pairing exchanges a human-entered link code for a device identity
package pairing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slidecast/slidecast/api/types/v1alpha1"
	"github.com/slidecast/slidecast/internal/errors"
	"github.com/slidecast/slidecast/internal/scastd/identity"
)

// ErrCodeRejected carries the remote's human-readable rejection reason.
type ErrCodeRejected struct {
	Reason string
}

func (e ErrCodeRejected) Error() string {
	return "link code rejected: " + e.Reason
}

// Service pairs the device against the remote link endpoint and persists
// the issued identity.
type Service struct {
	baseURL    string
	httpClient *http.Client
	identity   *identity.Manager
}

// NewService creates a pairing service. baseURL is the remote API root,
// e.g. "https://panel.example.com/api/tv".
func NewService(baseURL string, identity *identity.Manager) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		identity: identity,
	}
}

// Pair submits the link code. On success the issued identity is persisted
// and returned; on rejection the remote's message surfaces as
// ErrCodeRejected.
func (s *Service) Pair(ctx context.Context, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: link code is required", errors.ErrInvalidInput)
	}

	// The remote expects a form-encoded body.
	form := url.Values{}
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/link",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating link request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var linkResp v1alpha1.LinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&linkResp); err != nil {
		return "", fmt.Errorf("%w: decoding link response: %v", errors.ErrMalformedResponse, err)
	}

	if linkResp.UUID == "" {
		reason := linkResp.Message
		if reason == "" {
			reason = "invalid code"
		}
		return "", ErrCodeRejected{Reason: reason}
	}

	if err := s.identity.Set(ctx, linkResp.UUID); err != nil {
		return "", err
	}
	return linkResp.UUID, nil
}

// Unpair clears the stored identity.
func (s *Service) Unpair(ctx context.Context) error {
	return s.identity.Clear(ctx)
}
