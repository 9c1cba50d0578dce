package ports

import (
	"context"

	"go.trai.ch/firedrake-install/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=python.go -destination=mocks/mock_python.go -package=mocks

// ArtifactLocator finds the installed location of a Python module.
type ArtifactLocator interface {
	// Locate returns the package directory of module, or NotFound.
	Locate(ctx context.Context, module string) domain.Probe
}

// PythonEnv is a virtual environment bound to one interpreter.
type PythonEnv interface {
	ArtifactLocator

	// Create creates the virtual environment.
	Create(ctx context.Context) error

	// Exists reports whether the environment's interpreter is present.
	Exists() bool

	// Install runs pip install.
	Install(ctx context.Context, req domain.PipRequest) error

	// Uninstall removes every installed distribution whose name starts with name.
	// It gives up with ErrUninstallCeiling after a bounded number of rounds.
	Uninstall(ctx context.Context, name string) error

	// SitePackages returns the platform-specific site-packages directory.
	SitePackages(ctx context.Context) (string, error)
}
