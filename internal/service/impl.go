package service

import (
	"context"
	"fmt"

	"github.com/coccyx/gogen-api/internal/auth"
	"github.com/coccyx/gogen-api/internal/legacy"
	"github.com/coccyx/gogen-api/internal/logger"
	"github.com/coccyx/gogen-api/internal/registry"
	"github.com/coccyx/gogen-api/internal/scan"
	"github.com/coccyx/gogen-api/internal/store"
)

// regSvc implements the RegistryService interface. Every invocation is
// stateless; the only shared state is the external stores themselves.
type regSvc struct {
	items  store.ItemStore
	blobs  store.BlobStore
	tokens auth.TokenValidator
	docs   legacy.DocumentProvider

	strategies []resolveStrategy
}

var _ RegistryService = (*regSvc)(nil)

// New creates a registry service with its external dependencies injected.
// All four collaborators are required.
func New(
	items store.ItemStore,
	blobs store.BlobStore,
	tokens auth.TokenValidator,
	docs legacy.DocumentProvider,
) (RegistryService, error) {
	if items == nil {
		return nil, fmt.Errorf("item store is required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token validator is required")
	}
	if docs == nil {
		return nil, fmt.Errorf("legacy document provider is required")
	}

	s := &regSvc{
		items:  items,
		blobs:  blobs,
		tokens: tokens,
		docs:   docs,
	}
	s.strategies = s.resolveStrategies()
	return s, nil
}

// Get implements RegistryService.
func (s *regSvc) Get(ctx context.Context, id string) (*registry.Profile, error) {
	p, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg, err := s.resolveConfig(ctx, p)
	if err != nil {
		return nil, err
	}
	p.Config = cfg
	return p, nil
}

// List implements RegistryService.
func (s *regSvc) List(ctx context.Context) ([]registry.Summary, error) {
	return s.collectSummaries(ctx, "")
}

// Search implements RegistryService.
func (s *regSvc) Search(ctx context.Context, query string) ([]registry.Summary, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", registry.ErrInvalidInput)
	}
	return s.collectSummaries(ctx, query)
}

// collectSummaries accumulates every scan page into one sequence. Pagination
// is strictly sequential and checks the invocation's context between pages.
func (s *regSvc) collectSummaries(ctx context.Context, query string) ([]registry.Summary, error) {
	items, err := scan.Collect(ctx,
		func(ctx context.Context, cursor *store.Cursor) ([]registry.Summary, *store.Cursor, error) {
			req := store.ScanRequest{Query: query}
			if cursor != nil {
				req.StartKey = *cursor
			}
			res, err := s.items.ScanPage(ctx, req)
			if err != nil {
				return nil, nil, err
			}
			if res.NextKey == nil {
				return res.Items, nil, nil
			}
			next := res.NextKey
			return res.Items, &next, nil
		})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []registry.Summary{}
	}
	return items, nil
}

// Upsert implements RegistryService. The stages run strictly in order:
// credential presence, token validation, record validation, blob upload,
// item write. Any failure halts without advancing, so a rejected write never
// touches a store and a failed upload never reaches the item write.
func (s *regSvc) Upsert(ctx context.Context, p registry.Profile, credential string) error {
	if credential == "" {
		return fmt.Errorf("%w: no credential supplied", registry.ErrAuthRequired)
	}
	if err := s.tokens.Validate(ctx, credential); err != nil {
		return err
	}

	if p.IsEmpty() {
		return fmt.Errorf("%w: profile has no fields set", registry.ErrInvalidInput)
	}
	if p.Gogen == "" {
		return fmt.Errorf("%w: profile id is required", registry.ErrInvalidInput)
	}

	if p.Config != "" {
		if p.Owner == "" || p.Name == "" {
			return fmt.Errorf("%w: owner and name required", registry.ErrInvalidInput)
		}
		path := registry.BlobPath(p.Owner, p.Name)
		if err := s.blobs.Upload(ctx, path, p.Config); err != nil {
			return err
		}
		logger.Debugf("Uploaded config for %q to %q", p.Gogen, path)

		p.Config = ""
		p.S3Path = path
	}

	// A stored record holds at most one location; a blob path strips any
	// legacy reference, whether the path came from an upload or the caller.
	if p.S3Path != "" {
		p.GistID = ""
	}

	return s.items.Put(ctx, p)
}
