package service

import (
	"context"
	"fmt"

	"github.com/coccyx/gogen-api/internal/registry"
)

// resolveStrategy fetches configuration text for the location kind it owns.
// Strategies are evaluated in order, first match wins, so the blob path
// always shadows a leftover legacy reference.
type resolveStrategy struct {
	matches func(registry.Location) bool
	fetch   func(context.Context, registry.Location) (string, error)
}

func (s *regSvc) resolveStrategies() []resolveStrategy {
	return []resolveStrategy{
		{
			matches: func(loc registry.Location) bool { return loc.Kind == registry.LocationBlob },
			fetch: func(ctx context.Context, loc registry.Location) (string, error) {
				return s.blobs.Download(ctx, loc.Path)
			},
		},
		{
			matches: func(loc registry.Location) bool { return loc.Kind == registry.LocationLegacy },
			fetch: func(ctx context.Context, loc registry.Location) (string, error) {
				return s.docs.FirstPart(ctx, loc.Ref)
			},
		},
	}
}

// resolveConfig turns a profile's location pointer into configuration text.
// A profile recording no location at all fails with ErrConfigMissing,
// distinct from the upstream errors the strategies return.
func (s *regSvc) resolveConfig(ctx context.Context, p *registry.Profile) (string, error) {
	loc := p.Location()
	for _, strat := range s.strategies {
		if strat.matches(loc) {
			return strat.fetch(ctx, loc)
		}
	}
	return "", fmt.Errorf("%w: profile %q", registry.ErrConfigMissing, p.Gogen)
}
