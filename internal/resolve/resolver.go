package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/buildscript/internal/descriptor"
	"github.com/alexisbeaulieu97/buildscript/internal/logger"
	bserrors "github.com/alexisbeaulieu97/buildscript/pkg/errors"
)

// EngineSource is reported as the source of builtin plugins.
const EngineSource = "engine"

// Resolution records where a plugin was found.
type Resolution struct {
	Plugin descriptor.PluginReference
	Source string
}

// NotFoundError is returned when no declared source hosts the plugin.
type NotFoundError struct {
	Plugin    string
	Version   string
	Consulted []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plugin %s:%s not found in any repository (searched: %s)", e.Plugin, e.Version, strings.Join(e.Consulted, ", "))
}

// Resolver consults sources in declaration order; the first match wins.
type Resolver struct {
	sources []Source
	log     *logger.Logger
}

// NewResolver creates a resolver over sources.
func NewResolver(log *logger.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: append([]Source(nil), sources...), log: log}
}

// Sources returns the source names in consultation order.
func (r *Resolver) Sources() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	return names
}

// Resolve locates plugin. Builtin plugins resolve to the engine without
// consulting sources. With no sources it fails with NoSourceAvailableError.
// A source error stops the search, since a later match cannot be trusted
// while an earlier source is unreadable.
func (r *Resolver) Resolve(ctx context.Context, plugin descriptor.PluginReference) (Resolution, error) {
	if plugin.Builtin {
		return Resolution{Plugin: plugin, Source: EngineSource}, nil
	}
	if len(r.sources) == 0 {
		return Resolution{}, bserrors.NewNoSourceAvailableError(plugin.ID)
	}

	log := r.log.ForPlugin(plugin.ID, plugin.Version)
	consulted := make([]string, 0, len(r.sources))
	for _, source := range r.sources {
		if err := ctx.Err(); err != nil {
			return Resolution{}, err
		}

		consulted = append(consulted, source.Name())
		found, err := source.Has(ctx, plugin)
		if err != nil {
			return Resolution{}, fmt.Errorf("repository %s: %w", source.Name(), err)
		}
		if found {
			log.ForRepository(source.Name()).Debug("plugin resolved")
			return Resolution{Plugin: plugin, Source: source.Name()}, nil
		}
	}

	return Resolution{}, &NotFoundError{Plugin: plugin.ID, Version: plugin.Version, Consulted: consulted}
}
