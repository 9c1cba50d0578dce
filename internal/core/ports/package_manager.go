package ports

import (
	"context"

	"go.trai.ch/firedrake-install/internal/core/domain"
)

// PackageManager installs operating system packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_manager.go -destination=mocks/mock_package_manager.go -package=mocks
type PackageManager interface {
	// Install installs the packages listed for the host's package manager.
	// A host without a supported manager is not an error: the implementation
	// warns and prints manual instructions instead.
	Install(ctx context.Context, pkgs domain.SystemPackages, sudo bool) error
}
