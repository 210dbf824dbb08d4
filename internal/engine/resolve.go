package engine

import (
	"context"

	"github.com/alexisbeaulieu97/buildscript/internal/resolve"
)

// Resolve locates every declared plugin in the declared repositories, in
// declaration order, stopping at the first failure.
func (b *Build) Resolve(ctx context.Context) ([]resolve.Resolution, error) {
	out := make([]resolve.Resolution, 0, len(b.Plugins))
	for _, plugin := range b.Plugins {
		res, err := b.Resolver.Resolve(ctx, plugin)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}
