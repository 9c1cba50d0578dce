// Package shell provides the executor that runs external tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultTailLines is the number of output lines kept for error reports.
const DefaultTailLines = 40

// Executor implements ports.Runner using os/exec.
// Every command runs to completion in its own working directory; the
// process working directory is never changed.
type Executor struct {
	logger    ports.Logger
	tailLines int
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:    logger,
		tailLines: DefaultTailLines,
	}
}

// Run executes the command and waits for it to complete.
// Output lines are logged at debug level and the last lines are attached to
// the error when the command fails.
func (e *Executor) Run(ctx context.Context, cmd domain.Command) error {
	e.logger.Debug("$ " + cmd.String())

	out := newLogWriter(e.logger, e.tailLines)
	c := e.command(ctx, cmd)
	c.Stdout = out
	c.Stderr = out

	err := c.Run()
	_ = out.Close()
	if err != nil {
		return toolError(cmd, err, out.Tail())
	}
	return nil
}

// Output executes the command and returns its trimmed standard output.
// Standard error is logged like Run's output.
func (e *Executor) Output(ctx context.Context, cmd domain.Command) (string, error) {
	e.logger.Debug("$ " + cmd.String())

	var stdout bytes.Buffer
	stderr := newLogWriter(e.logger, e.tailLines)
	c := e.command(ctx, cmd)
	c.Stdout = &stdout
	c.Stderr = stderr

	err := c.Run()
	_ = stderr.Close()
	if err != nil {
		return "", toolError(cmd, err, stderr.Tail())
	}
	return strings.TrimSpace(stdout.String()), nil
}

// LookPath probes for an executable on PATH.
func (e *Executor) LookPath(name string) domain.Probe {
	path, err := lookPath(name, os.Environ())
	if err != nil {
		return domain.NotFound()
	}
	return domain.Found(path)
}

func (e *Executor) command(ctx context.Context, cmd domain.Command) *exec.Cmd {
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(cmd.Name) && !strings.Contains(cmd.Name, string(filepath.Separator)) {
		if lp, err := lookPath(cmd.Name, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // commands come from the manifest
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}
	c.Dir = cmd.Dir
	c.Env = env
	return c
}

func toolError(cmd domain.Command, err error, tail []string) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrToolNotFound, "cannot run "+cmd.Name), "command", cmd.String())
		}
		return zerr.With(zerr.Wrap(err, "failed to start command"), "command", cmd.String())
	}

	out := zerr.Wrap(domain.ErrToolFailed, fmt.Sprintf("%s exited with status %d", cmd.Name, exitErr.ExitCode()))
	out = zerr.With(out, "command", cmd.String())
	out = zerr.With(out, "exit_code", exitErr.ExitCode())
	if cmd.Dir != "" {
		out = zerr.With(out, "dir", cmd.Dir)
	}
	if len(tail) > 0 {
		out = zerr.With(out, "output", "\n"+strings.Join(tail, "\n"))
	}
	return out
}

// logWriter splits tool output into lines, logs each at debug level and
// keeps the last lines for error reports.
type logWriter struct {
	logger ports.Logger
	buf    []byte
	tail   []string
	limit  int
}

func newLogWriter(logger ports.Logger, limit int) *logWriter {
	return &logWriter{logger: logger, limit: limit}
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

// Tail returns the last lines written.
func (w *logWriter) Tail() []string {
	return w.tail
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	w.logger.Debug(msg)

	if w.limit <= 0 {
		return
	}
	w.tail = append(w.tail, msg)
	if len(w.tail) > w.limit {
		w.tail = w.tail[len(w.tail)-w.limit:]
	}
}

// resolveEnvironment merges the command environment over the system
// environment. A command PATH is prepended to the system PATH.
func resolveEnvironment(sysEnv []string, cmdEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(cmdEnv))
	order := make([]string, 0, len(sysEnv)+len(cmdEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for k, v := range cmdEnv {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		if k == "PATH" && envMap[k] != "" && v != "" {
			v = v + string(os.PathListSeparator) + envMap[k]
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
