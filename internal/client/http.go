package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/contentdeck/contentdeck/internal/access"
)

// CheckRequest is the wire form of a permission check.
type CheckRequest struct {
	UserID     string       `json:"userId"`
	Permission string       `json:"permission"`
	Scope      access.Scope `json:"scope"`
}

// CheckResponse is the wire form of a decision.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// HTTPChecker calls the access service's check endpoint. It implements
// Checker and is what services wrap in a Cache.
type HTTPChecker struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

// NewHTTPChecker creates a checker against the access service at baseURL,
// authenticating with the given bearer token.
func NewHTTPChecker(baseURL, bearerToken string) *HTTPChecker {
	return &HTTPChecker{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckAccess posts the check to the access service and decodes the
// decision. Any transport failure or non-200 answer is an error; the
// caller decides whether to fail open or closed.
func (h *HTTPChecker) CheckAccess(ctx context.Context, userID, permissionCode string, scope access.Scope) (bool, error) {
	body, err := json.Marshal(CheckRequest{
		UserID:     userID,
		Permission: permissionCode,
		Scope:      scope.Normalize(),
	})
	if err != nil {
		return false, errors.Wrap(err, "encoding check request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/access/check", bytes.NewReader(body))
	if err != nil {
		return false, errors.Wrap(err, "building check request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.bearerToken)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "calling access service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, errors.Errorf("access service returned status %d", resp.StatusCode)
	}

	var decision CheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return false, errors.Wrap(err, "decoding check response")
	}

	return decision.Allowed, nil
}
