// Package app implements the application layer for firedrake-install.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/firedrake-install/internal/adapters/detector"
	"go.trai.ch/firedrake-install/internal/adapters/telemetry"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/firedrake-install/internal/engine/heartbeat"
	"go.trai.ch/firedrake-install/internal/engine/installer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// tunableLogger is implemented by loggers whose output can be adjusted per run.
type tunableLogger interface {
	SetLinear(enable bool)
	SetVerbose(enable bool)
	SetLogFile(w io.Writer)
}

// App represents the main application logic.
type App struct {
	manifests ports.ManifestLoader
	settings  ports.SettingsLoader
	options   ports.OptionsStore
	runner    ports.Runner
	scm       ports.SourceControl
	system    ports.PackageManager
	envs      ports.EnvironmentFactory
	logger    ports.Logger

	terminal *os.File
	out      io.Writer
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	settings ports.SettingsLoader,
	options ports.OptionsStore,
	runner ports.Runner,
	scm ports.SourceControl,
	system ports.PackageManager,
	envs ports.EnvironmentFactory,
	log ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		settings:  settings,
		options:   options,
		runner:    runner,
		scm:       scm,
		system:    system,
		envs:      envs,
		logger:    log,
		terminal:  os.Stderr,
		out:       os.Stderr,
	}
}

// WithOutput sends heartbeat lines to w and disables terminal detection.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	a.terminal = nil
	return a
}

// RunOptions configures how a run reports progress.
type RunOptions struct {
	OutputMode string
}

// Override adjusts the options saved at install time before an update.
type Override func(*domain.InstallOptions)

// Install creates a new environment.
func (a *App) Install(ctx context.Context, opts domain.InstallOptions, run RunOptions) error {
	opts.Mode = domain.ModeInstall
	return a.execute(ctx, opts, run)
}

// Update re-runs the installer on an existing environment with the options
// recorded at install time, adjusted by overrides.
func (a *App) Update(ctx context.Context, venv string, overrides []Override, run RunOptions) error {
	root, err := filepath.Abs(venv)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve environment path"), "path", venv)
	}

	opts, err := a.options.Load(domain.NewLayout(root))
	if err != nil {
		return err
	}
	for _, o := range overrides {
		o(&opts)
	}
	opts.Mode = domain.ModeUpdate
	return a.execute(ctx, opts, run)
}

// WriteCache refreshes the artifact cache from an installed environment.
func (a *App) WriteCache(ctx context.Context, opts domain.InstallOptions, run RunOptions) error {
	opts.WriteCacheOnly = true
	return a.execute(ctx, opts, run)
}

// CacheStatus reports the cache entries of the packages opts selects.
func (a *App) CacheStatus(ctx context.Context, opts domain.InstallOptions) ([]domain.CacheReport, error) {
	opts, manifest, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}
	plan, err := domain.BuildPlan(manifest, opts.Addons)
	if err != nil {
		return nil, err
	}
	return a.newInstaller(telemetry.NewNoOpTracer()).CacheStatus(ctx, plan, opts)
}

// prepare resolves the environment path and loads the settings and manifest.
func (a *App) prepare(opts domain.InstallOptions) (domain.InstallOptions, *domain.Manifest, error) {
	settings, err := a.settings.Load()
	if err != nil {
		return opts, nil, err
	}
	opts.Settings = settings

	root, err := filepath.Abs(opts.VenvName)
	if err != nil {
		return opts, nil, zerr.With(zerr.Wrap(err, "failed to resolve environment path"), "path", opts.VenvName)
	}
	opts.VenvName = root

	manifest, err := a.manifests.Load(opts.ManifestPath)
	if err != nil {
		return opts, nil, err
	}
	return opts, manifest, nil
}

func (a *App) execute(ctx context.Context, opts domain.InstallOptions, run RunOptions) error {
	opts, manifest, err := a.prepare(opts)
	if err != nil {
		return err
	}
	plan, err := domain.BuildPlan(manifest, opts.Addons)
	if err != nil {
		return err
	}
	layout := domain.NewLayout(opts.VenvName)

	env := detector.DetectEnvironment(a.terminal, opts.Settings.CI)
	mode := detector.ResolveMode(env.Mode, run.OutputMode)
	if l, ok := a.logger.(tunableLogger); ok {
		l.SetLinear(mode == detector.ModeLinear)
		l.SetVerbose(opts.Verbose)
	}

	if !opts.WriteCacheOnly {
		closeLog, err := a.openLog(layout)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	// Install the bridge so finished steps are reported through the logger.
	tp := telemetry.Setup(a.logger)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	inst := a.newInstaller(telemetry.NewOTelTracer(telemetry.InstrumentationName))

	g, ctx := errgroup.WithContext(ctx)
	beatCtx, stopBeat := context.WithCancel(ctx)
	defer stopBeat()

	if env.Heartbeat {
		g.Go(func() error {
			return heartbeat.New(a.out, opts.Settings.HeartbeatInterval).Run(beatCtx)
		})
	}

	g.Go(func() error {
		defer stopBeat()
		if opts.WriteCacheOnly {
			return inst.WriteCache(ctx, plan, opts)
		}
		return inst.Run(ctx, manifest, plan, opts)
	})

	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, domain.ErrInstallFailed.Error())
	}

	if !opts.WriteCacheOnly {
		a.logger.Info("Firedrake is installed in " + layout.Root)
		a.logger.Info("run " + layout.UpdateScriptPath() + " to update it")
	}
	return nil
}

func (a *App) newInstaller(tracer ports.Tracer) *installer.Installer {
	return installer.NewInstaller(a.runner, a.scm, a.system, a.envs, a.options, tracer, a.logger)
}

// openLog mirrors the run's log into the environment's log file.
func (a *App) openLog(layout domain.Layout) (func(), error) {
	l, ok := a.logger.(tunableLogger)
	if !ok {
		return func() {}, nil
	}

	if err := os.MkdirAll(layout.Root, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create environment directory"), "path", layout.Root)
	}
	f, err := os.OpenFile(layout.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open log file"), "path", layout.LogPath())
	}
	l.SetLogFile(f)

	return func() {
		l.SetLogFile(nil)
		_ = f.Close()
	}, nil
}
