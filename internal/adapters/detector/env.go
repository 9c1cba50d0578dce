// Package detector inspects the terminal and CI environment to select the output mode.
package detector

import (
	"os"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode of the installer log.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeInteractive writes true-color output for a terminal.
	ModeInteractive
	// ModeLinear writes plain ANSI output for CI logs and pipes.
	ModeLinear
)

// Environment is the detected run environment.
type Environment struct {
	Mode OutputMode

	// Heartbeat reports whether a CI harness needs keepalive lines.
	Heartbeat bool
}

// DetectEnvironment returns the recommended output mode for f given the CI markers.
func DetectEnvironment(f *os.File, ci domain.CISettings) Environment {
	isTTY := f != nil && term.IsTerminal(int(f.Fd()))
	return Resolve(isTTY, ci)
}

// Resolve picks the mode from a terminal check and the CI markers.
func Resolve(isTTY bool, ci domain.CISettings) Environment {
	env := Environment{Mode: ModeInteractive, Heartbeat: ci.Active()}
	if !isTTY || ci.Active() {
		env.Mode = ModeLinear
	}
	return env
}

// ResolveMode applies a user override flag to auto-detection.
// userFlag should be one of: "auto", "interactive", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "interactive":
		return ModeInteractive
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
