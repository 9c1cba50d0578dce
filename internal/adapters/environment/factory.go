// Package environment binds the run-scoped adapters to the paths of a run.
package environment

import (
	"go.trai.ch/firedrake-install/internal/adapters/cache"
	"go.trai.ch/firedrake-install/internal/adapters/python"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
)

var _ ports.EnvironmentFactory = (*Factory)(nil)

// Factory implements ports.EnvironmentFactory.
type Factory struct {
	runner   ports.Runner
	logger   ports.Logger
	identity ports.IdentityProvider
	files    ports.FileSystem
	hasher   ports.TreeHasher
}

// NewFactory creates a Factory from the process-wide adapters.
func NewFactory(
	runner ports.Runner,
	logger ports.Logger,
	identity ports.IdentityProvider,
	files ports.FileSystem,
	hasher ports.TreeHasher,
) *Factory {
	return &Factory{
		runner:   runner,
		logger:   logger,
		identity: identity,
		files:    files,
		hasher:   hasher,
	}
}

// Python returns the virtual environment rooted at layout.
func (f *Factory) Python(layout domain.Layout, uninstallRetries int) ports.PythonEnv {
	return python.NewEnv(f.runner, f.logger, layout, uninstallRetries)
}

// Cache returns the artifact cache rooted at dir.
func (f *Factory) Cache(dir string) ports.CacheStore {
	return cache.NewStore(dir, f.identity, f.files, f.hasher, f.logger)
}
