package registry

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a profile does not exist. A stored record
	// missing its identity field is treated the same way.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAuthRequired is returned when a write arrives without a credential.
	ErrAuthRequired = errors.New("authorization required")
	// ErrAuthInvalid is returned when the identity provider rejects a
	// credential, or cannot be reached to validate it.
	ErrAuthInvalid = errors.New("authorization rejected")
	// ErrConfigMissing is returned when a profile records no configuration
	// location at all.
	ErrConfigMissing = errors.New("no configuration location recorded")
	// ErrUpstreamUnavailable is returned when an external store cannot be
	// reached or errors at the transport level. Retryable.
	ErrUpstreamUnavailable = errors.New("upstream store unavailable")
	// ErrUpstreamInconsistent is returned when an external store is
	// reachable but the data there is missing or malformed relative to what
	// the profile claims. Needs data repair, not a retry.
	ErrUpstreamInconsistent = errors.New("upstream data inconsistent")
)

// HTTPStatus maps a taxonomy error to its response status code. The second
// return is false for errors outside the taxonomy; those must be masked at
// the boundary rather than surfaced.
func HTTPStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrAuthRequired),
		errors.Is(err, ErrAuthInvalid):
		return http.StatusBadRequest, true
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, ErrConfigMissing),
		errors.Is(err, ErrUpstreamUnavailable),
		errors.Is(err, ErrUpstreamInconsistent):
		return http.StatusInternalServerError, true
	default:
		return http.StatusInternalServerError, false
	}
}
