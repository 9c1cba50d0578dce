// Package sysdeps installs operating system packages through the host's package manager.
package sysdeps

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultOSRelease is the os-release file read on Linux.
const DefaultOSRelease = "/etc/os-release"

// Platform identifies the package manager of the host.
type Platform string

const (
	// PlatformApt is a Debian derivative managed with apt-get.
	PlatformApt Platform = "apt"
	// PlatformBrew is macOS with Homebrew.
	PlatformBrew Platform = "brew"
	// PlatformUnknown has no supported package manager.
	PlatformUnknown Platform = "unknown"
)

var _ ports.PackageManager = (*Manager)(nil)

// Manager implements ports.PackageManager for apt and Homebrew.
type Manager struct {
	runner    ports.Runner
	logger    ports.Logger
	goos      string
	osRelease string
}

// NewManager creates a Manager for the running host.
func NewManager(runner ports.Runner, logger ports.Logger) *Manager {
	return NewManagerFor(runner, logger, runtime.GOOS, DefaultOSRelease)
}

// NewManagerFor creates a Manager for the given GOOS and os-release file.
func NewManagerFor(runner ports.Runner, logger ports.Logger, goos, osRelease string) *Manager {
	return &Manager{runner: runner, logger: logger, goos: goos, osRelease: osRelease}
}

// Detect returns the platform of the host.
func (m *Manager) Detect() Platform {
	switch m.goos {
	case "darwin":
		return PlatformBrew
	case "linux":
		ids := readOSRelease(m.osRelease)
		if slices.ContainsFunc(ids, func(id string) bool { return id == "debian" || id == "ubuntu" }) {
			return PlatformApt
		}
	}
	return PlatformUnknown
}

// Install installs the packages listed for the detected platform.
func (m *Manager) Install(ctx context.Context, pkgs domain.SystemPackages, sudo bool) error {
	switch m.Detect() {
	case PlatformApt:
		return m.installApt(ctx, pkgs.Apt, sudo)
	case PlatformBrew:
		return m.installBrew(ctx, pkgs.Brew, sudo)
	default:
		m.manual("no supported package manager found", pkgs.Apt)
		return nil
	}
}

// dpkgInstalled is the dpkg status of a fully installed package.
const dpkgInstalled = "install ok installed"

func (m *Manager) installApt(ctx context.Context, pkgs []string, sudo bool) error {
	if !m.runner.LookPath("apt-get").Found() {
		m.manual("apt-get not found", pkgs)
		return nil
	}

	var missing []string
	for _, pkg := range pkgs {
		status, err := m.runner.Output(ctx, domain.NewCommand("dpkg-query", "-W", "-f=${Status}", pkg))
		if err != nil || strings.TrimSpace(status) != dpkgInstalled {
			missing = append(missing, pkg)
		}
	}
	if len(missing) == 0 {
		m.logger.Debug("all system packages are installed")
		return nil
	}

	m.logger.Info("installing system packages: " + strings.Join(missing, " "))
	cmd := domain.NewCommand("apt-get", append([]string{"install", "-y"}, missing...)...)
	if sudo {
		cmd = domain.NewCommand("sudo", append([]string{cmd.Name}, cmd.Args...)...)
	}
	if err := m.runner.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to install system packages"), "packages", missing)
	}
	return nil
}

func (m *Manager) installBrew(ctx context.Context, pkgs []string, sudo bool) error {
	if !m.runner.LookPath("brew").Found() {
		m.manual("Homebrew not found", pkgs)
		return nil
	}
	if sudo {
		m.logger.Warn("Homebrew must not be run with sudo, ignoring --sudo")
	}

	m.logger.Info("installing system packages: " + strings.Join(pkgs, " "))
	if err := m.runner.Run(ctx, domain.NewCommand("brew", append([]string{"install"}, pkgs...)...)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to install system packages"), "packages", pkgs)
	}
	return nil
}

func (m *Manager) manual(reason string, pkgs []string) {
	m.logger.Warn(reason + ", please install the following packages manually: " + strings.Join(pkgs, " "))
}

// readOSRelease returns the ID and ID_LIKE entries of an os-release file.
func readOSRelease(path string) []string {
	f, err := os.Open(path) //nolint:gosec // Path is fixed or supplied by tests
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok || (key != "ID" && key != "ID_LIKE") {
			continue
		}
		ids = append(ids, strings.Fields(strings.Trim(value, `"'`))...)
	}
	return ids
}
