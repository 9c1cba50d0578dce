// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/firedrake-install/internal/adapters/config"
	_ "go.trai.ch/firedrake-install/internal/adapters/environment"
	_ "go.trai.ch/firedrake-install/internal/adapters/fs"
	_ "go.trai.ch/firedrake-install/internal/adapters/git"
	_ "go.trai.ch/firedrake-install/internal/adapters/logger"
	_ "go.trai.ch/firedrake-install/internal/adapters/shell"
	_ "go.trai.ch/firedrake-install/internal/adapters/sysdeps"
	// Register app nodes.
	_ "go.trai.ch/firedrake-install/internal/app"
)
