// Package auth validates write-path credentials against the external
// identity provider.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coccyx/gogen-api/internal/httpclient"
	"github.com/coccyx/gogen-api/internal/logger"
	"github.com/coccyx/gogen-api/internal/registry"
)

//go:generate mockgen -destination=mocks/mock_validator.go -package=mocks -source=validator.go TokenValidator

const (
	validateTimeout = 5 * time.Second
	userAgent       = "gogen-api"
)

// TokenValidator checks a bearer credential by asking the identity provider.
type TokenValidator interface {
	// Validate returns nil for an accepted credential. Any rejection,
	// transport failure, or timeout yields registry.ErrAuthInvalid; the
	// caller deliberately cannot tell "provider down" from "bad token", so
	// unauthenticated callers learn nothing about provider availability.
	Validate(ctx context.Context, credential string) error
}

// ProviderValidator validates credentials with one authenticated call to the
// identity provider's user endpoint.
type ProviderValidator struct {
	client   *http.Client
	endpoint string
}

var _ TokenValidator = (*ProviderValidator)(nil)

// NewProviderValidator creates a validator against the given provider base
// URL, e.g. https://api.github.com.
func NewProviderValidator(endpoint string) *ProviderValidator {
	return &ProviderValidator{
		client:   httpclient.New(validateTimeout),
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

// Validate implements TokenValidator.
func (v *ProviderValidator) Validate(ctx context.Context, credential string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+"/user", http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: building identity request: %v", registry.ErrAuthInvalid, err)
	}
	req.Header.Set("Authorization", credential)
	req.Header.Set("User-Agent", userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		logger.Debugf("Identity provider call failed: %v", err)
		return fmt.Errorf("%w: identity provider call failed", registry.ErrAuthInvalid)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: identity provider returned status %d", registry.ErrAuthInvalid, resp.StatusCode)
	}
	return nil
}
