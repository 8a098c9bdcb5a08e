// Package legacy resolves deprecated external document references, kept only
// for profiles written before configurations moved to the blob store.
package legacy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/coccyx/gogen-api/internal/httpclient"
	"github.com/coccyx/gogen-api/internal/registry"
)

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks -source=provider.go DocumentProvider

// maxDocumentSize bounds how much of a legacy document is read.
const maxDocumentSize = 10 << 20

// DocumentProvider resolves a legacy reference id to configuration text.
type DocumentProvider interface {
	// FirstPart returns the content of the first listed part of the
	// referenced document. A document with no parts, or whose first part
	// has no content, yields registry.ErrUpstreamInconsistent.
	FirstPart(ctx context.Context, ref string) (string, error)
}

// GistProvider resolves references against a gist-shaped document API: the
// response carries a "files" object whose values hold a "content" field.
type GistProvider struct {
	client   *http.Client
	endpoint string
}

var _ DocumentProvider = (*GistProvider)(nil)

// NewGistProvider creates a provider against the given API base URL.
func NewGistProvider(endpoint string) *GistProvider {
	return &GistProvider{
		client:   httpclient.New(0),
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

// FirstPart implements DocumentProvider.
func (g *GistProvider) FirstPart(ctx context.Context, ref string) (string, error) {
	url := fmt.Sprintf("%s/gists/%s", g.endpoint, ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: building document request: %v", registry.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching legacy document %q: %v", registry.ErrUpstreamUnavailable, ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %v", registry.ErrUpstreamUnavailable,
			httpclient.NewHTTPError(resp.StatusCode, url, "fetching legacy document"))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return "", fmt.Errorf("%w: reading legacy document %q: %v", registry.ErrUpstreamUnavailable, ref, err)
	}

	return firstPartContent(ref, body)
}

// firstPartContent extracts the first listed part's content. gjson.ForEach
// walks object members in document order, which is what "first listed" means
// here; a map decode would lose that order.
func firstPartContent(ref string, body []byte) (string, error) {
	parts := gjson.GetBytes(body, "files")
	if !parts.Exists() || !parts.IsObject() {
		return "", fmt.Errorf("%w: legacy document %q has no parts", registry.ErrUpstreamInconsistent, ref)
	}

	var content string
	found := false
	parts.ForEach(func(_, part gjson.Result) bool {
		content = part.Get("content").String()
		found = true
		return false
	})
	if !found {
		return "", fmt.Errorf("%w: legacy document %q has no parts", registry.ErrUpstreamInconsistent, ref)
	}
	if content == "" {
		return "", fmt.Errorf("%w: legacy document %q first part has no content", registry.ErrUpstreamInconsistent, ref)
	}
	return content, nil
}
