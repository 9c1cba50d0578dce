package ports

import "go.trai.ch/firedrake-install/internal/core/domain"

// EnvironmentFactory binds run-scoped adapters to the paths chosen for a run.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentFactory interface {
	// Python returns the virtual environment rooted at the layout.
	Python(layout domain.Layout, uninstallRetries int) PythonEnv

	// Cache returns the artifact cache rooted at dir.
	Cache(dir string) CacheStore
}
