// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/firedrake-install/internal/core/domain"
)

// Runner runs external tools to completion.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Runner interface {
	// Run executes the command and blocks until it exits.
	// A non-zero exit status is returned as an error carrying the exit code
	// and the tail of the tool's output.
	Run(ctx context.Context, cmd domain.Command) error

	// Output executes the command and returns its trimmed standard output.
	Output(ctx context.Context, cmd domain.Command) (string, error)

	// LookPath probes for an executable on PATH.
	LookPath(name string) domain.Probe
}
