// Package installer runs the install chain: system packages, the virtual
// environment, source checkouts and the ordered package builds.
package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

// requiredTools must be on PATH for any run.
var requiredTools = []string{"git", "python3"}

// optionalTools are only needed by some packages; a missing one is reported.
var optionalTools = []string{"mpicc", "cmake", "make"}

// Installer runs the steps of an install or update strictly in sequence.
type Installer struct {
	runner  ports.Runner
	scm     ports.SourceControl
	system  ports.PackageManager
	envs    ports.EnvironmentFactory
	options ports.OptionsStore
	tracer  ports.Tracer
	logger  ports.Logger
}

// NewInstaller creates a new Installer with the given dependencies.
func NewInstaller(
	runner ports.Runner,
	scm ports.SourceControl,
	system ports.PackageManager,
	envs ports.EnvironmentFactory,
	options ports.OptionsStore,
	tracer ports.Tracer,
	logger ports.Logger,
) *Installer {
	return &Installer{
		runner:  runner,
		scm:     scm,
		system:  system,
		envs:    envs,
		options: options,
		tracer:  tracer,
		logger:  logger,
	}
}

type stepFunc func(ctx context.Context, span ports.Span) error

// runState holds what one run learns as it goes.
type runState struct {
	i        *Installer
	manifest *domain.Manifest
	plan     *domain.Plan
	opts     domain.InstallOptions
	layout   domain.Layout
	py       ports.PythonEnv
	cache    ports.CacheStore

	changed      map[domain.InternedString]bool
	rebuilt      map[domain.InternedString]bool
	sitePackages string
	petscDir     string
}

func (i *Installer) newRunState(m *domain.Manifest, plan *domain.Plan, opts domain.InstallOptions) *runState {
	layout := domain.NewLayout(opts.VenvName)
	state := &runState{
		i:        i,
		manifest: m,
		plan:     plan,
		opts:     opts,
		layout:   layout,
		py:       i.envs.Python(layout, opts.Settings.UninstallRetries),
		changed:  make(map[domain.InternedString]bool),
		rebuilt:  make(map[domain.InternedString]bool),
	}
	if opts.CacheEnabled() {
		state.cache = i.envs.Cache(opts.Settings.CacheDir)
	}
	return state
}

// Run installs or updates the environment named by opts.
// Any failing step aborts the run.
func (i *Installer) Run(ctx context.Context, m *domain.Manifest, plan *domain.Plan, opts domain.InstallOptions) error {
	state := i.newRunState(m, plan, opts)
	i.tracer.EmitPlan(ctx, plan.Names())

	steps := []struct {
		name string
		fn   stepFunc
	}{
		{"probe tools", state.probeTools},
		{"system packages", state.systemPackages},
		{"virtual environment", state.environment},
		{"prerequisites", state.prerequisites},
		{"repositories", state.repositories},
	}
	for _, s := range steps {
		if err := state.step(ctx, s.name, s.fn); err != nil {
			return err
		}
	}

	for pkg := range plan.Walk() {
		err := state.step(ctx, pkg.Name.String(), func(ctx context.Context, span ports.Span) error {
			return state.installPackage(ctx, span, pkg)
		})
		if err != nil {
			return err
		}
	}

	return state.step(ctx, "saved options", func(_ context.Context, _ ports.Span) error {
		return i.options.Save(state.layout, opts)
	})
}

// WriteCache refreshes the cache entry of every cacheable package from the
// installed environment without building anything.
func (i *Installer) WriteCache(ctx context.Context, plan *domain.Plan, opts domain.InstallOptions) error {
	if !opts.CacheEnabled() {
		return domain.ErrCacheDisabled
	}
	state := i.newRunState(nil, plan, opts)
	if !state.py.Exists() {
		return zerr.With(zerr.Wrap(domain.ErrEnvironmentMissing, "cannot write cache"), "path", state.layout.Root)
	}

	for pkg := range plan.Walk() {
		if !state.cacheable(pkg) {
			continue
		}
		err := state.step(ctx, pkg.Name.String(), func(ctx context.Context, span ports.Span) error {
			wrote, err := state.cache.Write(ctx, domain.CacheEntryFor(state.layout, pkg), state.py)
			if err != nil {
				return err
			}
			if !wrote {
				skip(span, "up to date")
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// CacheStatus reports every cacheable package of the plan against its cache entry.
func (i *Installer) CacheStatus(ctx context.Context, plan *domain.Plan, opts domain.InstallOptions) ([]domain.CacheReport, error) {
	if !opts.CacheEnabled() {
		return nil, domain.ErrCacheDisabled
	}
	state := i.newRunState(nil, plan, opts)

	var entries []domain.CacheEntry
	for pkg := range plan.Walk() {
		if state.cacheable(pkg) {
			entries = append(entries, domain.CacheEntryFor(state.layout, pkg))
		}
	}
	return state.cache.Status(ctx, entries), nil
}

func (s *runState) step(ctx context.Context, name string, fn stepFunc) error {
	ctx, span := s.i.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return zerr.With(err, "step", name)
	}
	return nil
}

func skip(span ports.Span, detail string) {
	span.SetAttribute(domain.StepAttrSkipped, true)
	span.SetAttribute(domain.StepAttrDetail, detail)
}

func (s *runState) probeTools(_ context.Context, _ ports.Span) error {
	for _, tool := range requiredTools {
		if !s.i.runner.LookPath(tool).Found() {
			return zerr.With(zerr.Wrap(domain.ErrToolNotFound, "missing required tool"), "tool", tool)
		}
	}
	for _, tool := range optionalTools {
		probe := s.i.runner.LookPath(tool)
		if !probe.Found() {
			s.i.logger.Warn("could not find " + tool + " on PATH, some packages may fail to build")
			continue
		}
		s.i.logger.Debug("found " + tool + " at " + probe.Path())
	}
	return nil
}

func (s *runState) systemPackages(ctx context.Context, span ports.Span) error {
	if !s.opts.PackageManager {
		skip(span, "disabled")
		return nil
	}
	return s.i.system.Install(ctx, s.manifest.System, s.opts.Sudo)
}

func (s *runState) environment(ctx context.Context, span ports.Span) error {
	exists := s.py.Exists()
	if s.opts.Mode == domain.ModeUpdate {
		if !exists {
			return zerr.With(zerr.Wrap(domain.ErrEnvironmentMissing, "cannot update"), "path", s.layout.Root)
		}
		skip(span, "existing")
		return nil
	}
	if exists {
		return zerr.With(zerr.Wrap(domain.ErrEnvironmentExists, "cannot install"), "path", s.layout.Root)
	}
	return s.py.Create(ctx)
}

func (s *runState) prerequisites(ctx context.Context, _ ports.Span) error {
	for _, req := range s.manifest.Prerequisites {
		if err := s.py.Install(ctx, domain.PipRequest{Target: req}); err != nil {
			return err
		}
	}
	return nil
}

func (s *runState) repositories(ctx context.Context, _ ports.Span) error {
	change := s.opts.Settings.Change
	for _, repo := range s.plan.Repositories(s.manifest) {
		dir := s.layout.SourceDir(repo.Name.String())

		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			if err := s.i.scm.Clone(ctx, repo, dir, !s.opts.DisableSSH); err != nil {
				return err
			}
			s.changed[repo.Name] = true
		} else if s.opts.Mode == domain.ModeUpdate {
			changed, err := s.i.scm.Update(ctx, dir, repo.Branch)
			if err != nil {
				return err
			}
			s.changed[repo.Name] = s.changed[repo.Name] || changed
		}

		if change.Valid() && change.Slug == repo.Slug {
			if err := s.i.scm.CheckoutChange(ctx, dir, change); err != nil {
				return err
			}
			s.i.logger.Info("checked out " + change.Commit + " in " + repo.Name.String())
			s.changed[repo.Name] = true
		}
	}
	return nil
}

func (s *runState) installPackage(ctx context.Context, span ports.Span, pkg domain.Package) error {
	name := pkg.Name.String()
	if s.opts.HonourPETScDir && pkg.ProvidedByPETSc {
		skip(span, "provided by PETSC_DIR")
		return nil
	}

	editable := s.opts.Developer && pkg.Editable
	if s.opts.Mode == domain.ModeUpdate && !s.opts.Rebuild && !editable &&
		!s.changed[pkg.Repository] && !s.dependencyRebuilt(pkg) {
		skip(span, "unchanged")
		return nil
	}

	if s.opts.Clean && pkg.Kind == domain.BuildPip {
		if err := s.py.Uninstall(ctx, name); err != nil {
			return err
		}
	}

	entry := domain.CacheEntryFor(s.layout, pkg)
	if s.cacheable(pkg) && !s.opts.Rebuild && s.cache.Validate(ctx, entry) == domain.CacheHit {
		site, err := s.site(ctx)
		if err != nil {
			return err
		}
		if err := s.cache.Materialize(ctx, entry, filepath.Join(site, pkg.Module)); err != nil {
			return err
		}
		span.SetAttribute(domain.StepAttrCached, true)
		s.rebuilt[pkg.Name] = true
		return nil
	}

	if err := s.build(ctx, pkg, editable); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "package", name)
	}
	s.rebuilt[pkg.Name] = true

	if s.cacheable(pkg) {
		if _, err := s.cache.Write(ctx, entry, s.py); err != nil {
			s.i.logger.Warn("could not cache " + name + ": " + err.Error())
		}
	}
	return nil
}

// dependencyRebuilt reports whether a dependency of pkg was installed earlier
// in this run. Dependencies always come first in plan order.
func (s *runState) dependencyRebuilt(pkg domain.Package) bool {
	for _, dep := range pkg.Dependencies {
		if s.rebuilt[dep] {
			return true
		}
	}
	return false
}

func (s *runState) cacheable(pkg domain.Package) bool {
	return s.cache != nil && pkg.Cache && pkg.Module != ""
}

func (s *runState) site(ctx context.Context) (string, error) {
	if s.sitePackages != "" {
		return s.sitePackages, nil
	}
	site, err := s.py.SitePackages(ctx)
	if err != nil {
		return "", err
	}
	s.sitePackages = site
	return site, nil
}

func (s *runState) build(ctx context.Context, pkg domain.Package, editable bool) error {
	dir := s.layout.SourceDir(pkg.Repository.String())
	if pkg.Subdir != "" {
		dir = filepath.Join(dir, pkg.Subdir)
	}
	env := s.buildEnv(ctx, pkg)

	switch pkg.Kind {
	case domain.BuildPip:
		return s.py.Install(ctx, domain.PipRequest{
			Name:     pkg.Name.String(),
			Target:   ".",
			Dir:      dir,
			Editable: editable,
			NoBinary: pkg.NoBinary,
			Args:     pkg.Args,
			Env:      env,
		})
	case domain.BuildAutotools:
		return s.autotools(ctx, pkg, dir, env)
	case domain.BuildCMake:
		return s.cmake(ctx, pkg, dir, env)
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidBuildKind, "cannot build"), "kind", string(pkg.Kind))
	}
}

func (s *runState) autotools(ctx context.Context, pkg domain.Package, dir string, env map[string]string) error {
	var cmds []domain.Command
	if len(pkg.Bootstrap) > 0 {
		cmds = append(cmds, domain.NewCommand(pkg.Bootstrap[0], pkg.Bootstrap[1:]...))
	}
	configure := append([]string{"--prefix=" + s.layout.Root}, pkg.Args...)
	cmds = append(cmds,
		domain.NewCommand("./configure", configure...),
		domain.NewCommand("make"),
		domain.NewCommand("make", "install"),
	)
	return s.runAll(ctx, cmds, dir, env)
}

func (s *runState) cmake(ctx context.Context, pkg domain.Package, dir string, env map[string]string) error {
	buildDir := filepath.Join(dir, "build")
	if err := os.MkdirAll(buildDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build directory"), "path", buildDir)
	}
	configure := append([]string{"..", "-DCMAKE_INSTALL_PREFIX=" + s.layout.Root}, pkg.Args...)
	return s.runAll(ctx, []domain.Command{
		domain.NewCommand("cmake", configure...),
		domain.NewCommand("make"),
		domain.NewCommand("make", "install"),
	}, buildDir, env)
}

func (s *runState) runAll(ctx context.Context, cmds []domain.Command, dir string, env map[string]string) error {
	for _, cmd := range cmds {
		cmd = cmd.In(dir).WithEnv("VIRTUAL_ENV", s.layout.Root).WithEnv("PATH", s.layout.BinDir())
		for k, v := range env {
			cmd = cmd.WithEnv(k, v)
		}
		if err := s.i.runner.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// buildEnv returns the environment shared by every build: the PETSc
// configure options and location, plus the package's own entries with
// ${NAME} references expanded.
func (s *runState) buildEnv(ctx context.Context, pkg domain.Package) map[string]string {
	env := map[string]string{
		"PETSC_CONFIGURE_OPTIONS": s.petscConfigureOptions(),
	}
	if dir, arch := s.petsc(ctx); dir != "" {
		env["PETSC_DIR"] = dir
		env["PETSC_ARCH"] = arch
	}

	lookup := func(key string) string {
		if v, ok := env[key]; ok {
			return v
		}
		return os.Getenv(key)
	}
	extra := make(map[string]string, len(pkg.Env))
	for k, v := range pkg.Env {
		extra[k] = os.Expand(v, lookup)
	}
	for k, v := range extra {
		env[k] = v
	}
	return env
}

func (s *runState) petscConfigureOptions() string {
	opts := s.manifest.PETSc.Configure
	if s.opts.MinimalPETSc {
		opts = s.manifest.PETSc.Minimal
	}
	joined := strings.Join(opts, " ")
	if extra := strings.TrimSpace(s.opts.Settings.PETSc.ConfigureOptions); extra != "" {
		joined = strings.TrimSpace(joined + " " + extra)
	}
	return joined
}

// petsc returns the PETSc directory and architecture builds compile against.
// Without an honoured external PETSc the directory is the installed petsc
// package, which is unknown until petsc itself has been built.
func (s *runState) petsc(ctx context.Context) (string, string) {
	if s.opts.HonourPETScDir {
		return s.opts.Settings.PETSc.Dir, s.opts.Settings.PETSc.Arch
	}
	if s.petscDir == "" {
		if probe := s.py.Locate(ctx, "petsc"); probe.Found() {
			s.petscDir = probe.Path()
		}
	}
	return s.petscDir, ""
}
