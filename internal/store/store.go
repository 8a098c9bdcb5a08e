// Package store implements the external-store clients backing the registry:
// a DynamoDB item store for profile records and an S3 blob store for
// configuration payloads.
package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/coccyx/gogen-api/internal/registry"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go ItemStore,BlobStore

// PageSize is the upper bound on items returned by one scan round trip.
// Callers must not assume a page carries more, or even this many, items.
const PageSize = 20

// Cursor is the continuation token for a paginated scan. It is opaque to
// callers; a nil cursor means the first page.
type Cursor map[string]types.AttributeValue

// ScanRequest describes one page fetch of the item store.
type ScanRequest struct {
	// StartKey continues a previous scan. Nil requests the first page.
	StartKey Cursor
	// Query, when non-empty, filters each page to items whose id or
	// description contains it as a literal, case-sensitive substring. The
	// filter is applied per page and never short-circuits the scan.
	Query string
}

// ScanResult is one page of summaries plus the continuation token for the
// next page, nil when the scan is exhausted.
type ScanResult struct {
	Items   []registry.Summary
	NextKey Cursor
}

// ItemStore is the key-value store holding profile records.
type ItemStore interface {
	// Get returns the profile stored under id. A missing key, or a stored
	// record lacking the identity field, yields registry.ErrNotFound.
	Get(ctx context.Context, id string) (*registry.Profile, error)
	// Put writes the profile as a full overwrite keyed by its id. Last
	// writer wins; there is no concurrency check.
	Put(ctx context.Context, p registry.Profile) error
	// ScanPage fetches one page of summaries.
	ScanPage(ctx context.Context, req ScanRequest) (ScanResult, error)
}

// BlobStore is the object store holding configuration payload text.
type BlobStore interface {
	// Download fetches the payload at path. A reachable store without the
	// object yields registry.ErrUpstreamInconsistent.
	Download(ctx context.Context, path string) (string, error)
	// Upload writes the payload at path, overwriting any existing object.
	Upload(ctx context.Context, path, body string) error
}
