// Package python drives the virtual environment interpreter and pip.
package python

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

// SystemInterpreter creates the virtual environment.
const SystemInterpreter = "python3"

const locateScript = `import importlib.util, os, sys
spec = importlib.util.find_spec(sys.argv[1])
if spec is None:
    sys.exit(1)
if spec.submodule_search_locations:
    print(list(spec.submodule_search_locations)[0])
else:
    print(os.path.dirname(spec.origin))
`

const sitePackagesScript = `import sysconfig; print(sysconfig.get_paths()["platlib"])`

var _ ports.PythonEnv = (*Env)(nil)

// Env is a virtual environment bound to an installation layout.
type Env struct {
	runner  ports.Runner
	logger  ports.Logger
	layout  domain.Layout
	retries int
}

// NewEnv creates an Env for the environment at layout. retries bounds the
// uninstall loop; a non-positive value selects the default.
func NewEnv(runner ports.Runner, logger ports.Logger, layout domain.Layout, retries int) *Env {
	if retries <= 0 {
		retries = domain.DefaultUninstallRetries
	}
	return &Env{runner: runner, logger: logger, layout: layout, retries: retries}
}

// Create creates the virtual environment with the system interpreter.
func (e *Env) Create(ctx context.Context) error {
	e.logger.Info("creating virtual environment " + e.layout.Root)
	if err := e.runner.Run(ctx, domain.NewCommand(SystemInterpreter, "-m", "venv", e.layout.Root)); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create virtual environment"), "venv", e.layout.Root)
	}
	return nil
}

// Exists reports whether the environment interpreter is present.
func (e *Env) Exists() bool {
	_, err := os.Stat(e.layout.Python())
	return err == nil
}

// Install runs pip install inside the environment.
func (e *Env) Install(ctx context.Context, req domain.PipRequest) error {
	cmd := e.python(append([]string{"-m", "pip"}, req.PipArgs()...)...).In(req.Dir)
	for k, v := range req.Env {
		cmd = cmd.WithEnv(k, v)
	}
	if err := e.runner.Run(ctx, cmd); err != nil {
		return zerr.With(zerr.Wrap(err, "pip install failed"), "target", req.Target)
	}
	return nil
}

// Uninstall removes every installed distribution whose name starts with
// name, repeating until pip no longer lists one. Some packages leave
// same-named entries behind after a single removal, so the loop runs at most
// retries rounds before giving up with ErrUninstallCeiling.
func (e *Env) Uninstall(ctx context.Context, name string) error {
	for round := 0; ; round++ {
		installed, err := e.installedMatching(ctx, name)
		if err != nil {
			return err
		}
		if len(installed) == 0 {
			return nil
		}
		if round >= e.retries {
			err := zerr.With(zerr.Wrap(domain.ErrUninstallCeiling, "failed to uninstall "+name), "package", name)
			err = zerr.With(err, "attempts", strconv.Itoa(round))
			return zerr.With(err, "remaining", strings.Join(installed, ", "))
		}
		for _, dist := range installed {
			e.logger.Debug("uninstalling " + dist)
			if err := e.runner.Run(ctx, e.python("-m", "pip", "uninstall", "-y", dist)); err != nil {
				return zerr.With(zerr.Wrap(err, "pip uninstall failed"), "package", dist)
			}
		}
	}
}

// Locate returns the directory of the installed module, or NotFound when the
// interpreter cannot import it.
func (e *Env) Locate(ctx context.Context, module string) domain.Probe {
	out, err := e.runner.Output(ctx, e.python("-c", locateScript, module))
	if err != nil || out == "" {
		return domain.NotFound()
	}
	return domain.Found(out)
}

// SitePackages returns the platform library directory of the environment.
func (e *Env) SitePackages(ctx context.Context) (string, error) {
	out, err := e.runner.Output(ctx, e.python("-c", sitePackagesScript))
	if err != nil {
		return "", zerr.Wrap(err, "failed to query site-packages directory")
	}
	return out, nil
}

func (e *Env) python(args ...string) domain.Command {
	return domain.NewCommand(e.layout.Python(), args...).
		WithEnv("VIRTUAL_ENV", e.layout.Root).
		WithEnv("PATH", e.layout.BinDir())
}

func (e *Env) installedMatching(ctx context.Context, name string) ([]string, error) {
	out, err := e.runner.Output(ctx, e.python("-m", "pip", "freeze", "-l"))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list installed packages")
	}

	var (
		matches []string
		pending string
	)
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			pending = editableName(line)
			continue
		}
		dist := distribution(line, pending)
		pending = ""
		if strings.HasPrefix(strings.ToLower(dist), strings.ToLower(name)) && !seen[dist] {
			seen[dist] = true
			matches = append(matches, dist)
		}
	}
	return matches, nil
}

// distribution extracts the distribution name from a pip freeze line such as
// "petsc4py==3.20.0", "-e git+https://...#egg=petsc4py" or "h5py @ file:///src/h5py".
// An "-e <path>" line takes the name from the preceding comment, or else from
// the directory name.
func distribution(line, editable string) string {
	if _, egg, ok := strings.Cut(line, "#egg="); ok {
		egg, _, _ = strings.Cut(egg, "&")
		return egg
	}
	if path, ok := strings.CutPrefix(line, "-e "); ok {
		if editable != "" {
			return editable
		}
		return filepath.Base(strings.TrimSpace(path))
	}
	for _, sep := range []string{"==", " @ ", "@"} {
		if name, _, ok := strings.Cut(line, sep); ok {
			return strings.TrimSpace(name)
		}
	}
	return line
}

// editableName reads the distribution from the comment pip writes above an
// editable install, "# Editable install with no version control (name==1.0)".
func editableName(comment string) string {
	i := strings.LastIndex(comment, "(")
	if i < 0 {
		return ""
	}
	name, _, ok := strings.Cut(comment[i+1:], "==")
	if !ok {
		return ""
	}
	return strings.TrimSpace(name)
}
