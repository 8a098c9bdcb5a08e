// Package service provides the business logic for the generator profile
// registry: resolution, pagination, and write validation between the HTTP
// handlers and the external stores.
package service

import (
	"context"

	"github.com/coccyx/gogen-api/internal/registry"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go RegistryService

// RegistryService defines the registry operations.
type RegistryService interface {
	// Get returns the profile stored under id with its configuration text
	// resolved and attached. Resolution failures propagate unchanged; there
	// is no silent fallback.
	Get(ctx context.Context, id string) (*registry.Profile, error)

	// List returns the id/description summary of every profile, accumulated
	// across all scan pages. An empty registry yields an empty slice.
	List(ctx context.Context) ([]registry.Summary, error)

	// Search returns the summaries whose id or description contains query as
	// a literal, case-sensitive substring. Every page is fetched and
	// filtered regardless of earlier matches.
	Search(ctx context.Context, query string) ([]registry.Summary, error)

	// Upsert validates the credential, uploads an inline configuration to
	// the blob store when one is present, and writes the profile as a full
	// overwrite. No store or blob operation happens before the credential
	// check passes.
	Upsert(ctx context.Context, p registry.Profile, credential string) error
}
