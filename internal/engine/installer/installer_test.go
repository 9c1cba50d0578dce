package installer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/firedrake-install/internal/core/ports/mocks"
	"go.trai.ch/firedrake-install/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

type installerTestMocks struct {
	runner  *mocks.MockRunner
	scm     *mocks.MockSourceControl
	system  *mocks.MockPackageManager
	envs    *mocks.MockEnvironmentFactory
	options *mocks.MockOptionsStore
	tracer  *mocks.MockTracer
	logger  *mocks.MockLogger
	py      *mocks.MockPythonEnv
	cache   *mocks.MockCacheStore
	spans   map[string]*mocks.MockSpan
}

// setupInstallerTest creates an installer and common mocks.
// Spans named in tracked get their own mock so tests can assert attributes on them.
func setupInstallerTest(t *testing.T, tracked ...string) (*installer.Installer, installerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := installerTestMocks{
		runner:  mocks.NewMockRunner(ctrl),
		scm:     mocks.NewMockSourceControl(ctrl),
		system:  mocks.NewMockPackageManager(ctrl),
		envs:    mocks.NewMockEnvironmentFactory(ctrl),
		options: mocks.NewMockOptionsStore(ctrl),
		tracer:  mocks.NewMockTracer(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		py:      mocks.NewMockPythonEnv(ctrl),
		cache:   mocks.NewMockCacheStore(ctrl),
		spans:   make(map[string]*mocks.MockSpan),
	}

	// Default optimistic mocks to reduce noise in specific tests.
	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	for _, name := range tracked {
		span := mocks.NewMockSpan(ctrl)
		span.EXPECT().End().AnyTimes()
		span.EXPECT().RecordError(gomock.Any()).AnyTimes()
		m.spans[name] = span
	}

	// Start has variadic signature: Start(ctx, name, ...opts).
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			if span, ok := m.spans[name]; ok {
				return ctx, span
			}
			return ctx, mockSpan
		},
	).AnyTimes()
	m.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	m.envs.EXPECT().Python(gomock.Any(), gomock.Any()).Return(m.py).AnyTimes()
	m.envs.EXPECT().Cache(gomock.Any()).Return(m.cache).AnyTimes()

	i := installer.NewInstaller(m.runner, m.scm, m.system, m.envs, m.options, m.tracer, m.logger)
	return i, m
}

// allToolsFound makes every tool probe succeed.
func (m installerTestMocks) allToolsFound() {
	m.runner.EXPECT().LookPath(gomock.Any()).DoAndReturn(func(name string) domain.Probe {
		return domain.Found("/usr/bin/" + name)
	}).AnyTimes()
}

func testManifest() *domain.Manifest {
	n := domain.NewInternedString
	return &domain.Manifest{
		Version:       "1",
		System:        domain.SystemPackages{Apt: []string{"cmake"}, Brew: []string{"cmake"}},
		Prerequisites: []string{"numpy"},
		PETSc: domain.PETScOptions{
			Configure: []string{"--download-hdf5", "--with-debugging=0"},
			Minimal:   []string{"--with-debugging=0"},
		},
		Repositories: []domain.Repository{
			{Name: n("petsc"), Slug: "firedrakeproject/petsc", Host: "github.com", Branch: "firedrake"},
			{Name: n("firedrake"), Slug: "firedrakeproject/firedrake", Host: "github.com", Branch: "master"},
		},
		Packages: []domain.Package{
			{Name: n("petsc"), Repository: n("petsc"), Kind: domain.BuildPip, Module: "petsc", Cache: true, NoBinary: true, ProvidedByPETSc: true},
			{
				Name: n("firedrake"), Repository: n("firedrake"), Kind: domain.BuildPip, Module: "firedrake", Editable: true,
				Dependencies: []domain.InternedString{n("petsc")},
				Env:          map[string]string{"HDF5_DIR": "${PETSC_DIR}/${PETSC_ARCH}"},
			},
		},
	}
}

func testPlan(t *testing.T, m *domain.Manifest) *domain.Plan {
	t.Helper()
	p, err := domain.BuildPlan(m, nil)
	require.NoError(t, err)
	return p
}

func testOptions(t *testing.T) domain.InstallOptions {
	t.Helper()
	opts := domain.DefaultInstallOptions()
	opts.VenvName = t.TempDir()
	opts.Settings.CacheDir = "/cache"
	return opts
}

func TestInstaller_Run_Install(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()

	petscEntry := domain.CacheEntryFor(layout, manifest.Packages[0])

	gomock.InOrder(
		m.system.EXPECT().Install(gomock.Any(), manifest.System, false).Return(nil),
		m.py.EXPECT().Exists().Return(false),
		m.py.EXPECT().Create(gomock.Any()).Return(nil),
		m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil),
		m.scm.EXPECT().Clone(gomock.Any(), manifest.Repositories[0], layout.SourceDir("petsc"), true).Return(nil),
		m.scm.EXPECT().Clone(gomock.Any(), manifest.Repositories[1], layout.SourceDir("firedrake"), true).Return(nil),
		m.cache.EXPECT().Validate(gomock.Any(), petscEntry).Return(domain.CacheMiss),
		m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{
			Name:     "petsc",
			Target:   ".",
			Dir:      layout.SourceDir("petsc"),
			NoBinary: true,
			Env:      map[string]string{"PETSC_CONFIGURE_OPTIONS": "--download-hdf5 --with-debugging=0"},
		}).Return(nil),
		m.cache.EXPECT().Write(gomock.Any(), petscEntry, m.py).Return(true, nil),
		m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{
			Name:   "firedrake",
			Target: ".",
			Dir:    layout.SourceDir("firedrake"),
			Env: map[string]string{
				"PETSC_CONFIGURE_OPTIONS": "--download-hdf5 --with-debugging=0",
				"PETSC_DIR":               "/site/petsc",
				"PETSC_ARCH":              "",
				"HDF5_DIR":                "/site/petsc/",
			},
		}).Return(nil),
		m.options.EXPECT().Save(layout, opts).Return(nil),
	)

	// petsc is not importable until it has been built.
	m.py.EXPECT().Locate(gomock.Any(), "petsc").Return(domain.NotFound()).Times(1)
	m.py.EXPECT().Locate(gomock.Any(), "petsc").Return(domain.Found("/site/petsc")).AnyTimes()

	err := i.Run(context.Background(), manifest, testPlan(t, manifest), opts)
	require.NoError(t, err)
}

func TestInstaller_Run_CacheHitSkipsBuild(t *testing.T) {
	i, m := setupInstallerTest(t, "petsc")
	manifest := testManifest()
	manifest.Packages = manifest.Packages[:1]
	opts := testOptions(t)
	opts.PackageManager = false
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()

	entry := domain.CacheEntryFor(layout, manifest.Packages[0])

	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil)
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.cache.EXPECT().Validate(gomock.Any(), entry).Return(domain.CacheHit)
	m.py.EXPECT().SitePackages(gomock.Any()).Return("/venv/lib/python3/site-packages", nil)
	m.cache.EXPECT().Materialize(gomock.Any(), entry, "/venv/lib/python3/site-packages/petsc").Return(nil)
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrCached, true)
	m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_CacheWriteFailureIsNotFatal(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	manifest.Packages = manifest.Packages[:1]
	opts := testOptions(t)
	opts.PackageManager = false
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.py.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(domain.NotFound()).AnyTimes()
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.cache.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(domain.CacheMiss)
	m.cache.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("disk full"))
	m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_CacheDisabled(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	manifest.Packages = manifest.Packages[:1]
	opts := testOptions(t)
	opts.PackageManager = false
	opts.Settings.CacheDir = ""
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.py.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(domain.NotFound()).AnyTimes()
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	// No cache expectations: the store must not be touched.

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_EnvironmentExists(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)
	opts.PackageManager = false
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(true)

	err := i.Run(context.Background(), manifest, testPlan(t, manifest), opts)
	require.ErrorIs(t, err, domain.ErrEnvironmentExists)
}

func TestInstaller_Run_MissingRequiredTool(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)

	m.runner.EXPECT().LookPath("git").Return(domain.NotFound())

	err := i.Run(context.Background(), manifest, testPlan(t, manifest), opts)
	require.ErrorIs(t, err, domain.ErrToolNotFound)
}

func TestInstaller_Run_BuildFailureAborts(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)
	opts.PackageManager = false
	opts.Settings.CacheDir = ""
	m.allToolsFound()

	buildErr := errors.New("exit status 1")
	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil)
	m.py.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(domain.NotFound()).AnyTimes()
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).Return(buildErr)
	// firedrake is never built and options are never saved.

	err := i.Run(context.Background(), manifest, testPlan(t, manifest), opts)
	require.ErrorIs(t, err, buildErr)
	assert.Contains(t, err.Error(), "package build failed")
}

func TestInstaller_Run_Update(t *testing.T) {
	i, m := setupInstallerTest(t, "petsc")
	manifest := testManifest()
	opts := testOptions(t)
	opts.Mode = domain.ModeUpdate
	opts.PackageManager = false
	opts.Developer = true
	opts.Settings.CacheDir = ""
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()

	for _, repo := range []string{"petsc", "firedrake"} {
		require.NoError(t, os.MkdirAll(layout.SourceDir(repo), 0o750))
	}

	m.py.EXPECT().Exists().Return(true)
	m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil)
	m.scm.EXPECT().Update(gomock.Any(), layout.SourceDir("petsc"), "firedrake").Return(false, nil)
	m.scm.EXPECT().Update(gomock.Any(), layout.SourceDir("firedrake"), "master").Return(false, nil)
	m.py.EXPECT().Locate(gomock.Any(), "petsc").Return(domain.Found("/site/petsc")).AnyTimes()

	// petsc is unchanged and not editable; firedrake is editable in developer mode.
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrSkipped, true)
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrDetail, "unchanged")
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.PipRequest) error {
		assert.Equal(t, "firedrake", req.Name)
		assert.True(t, req.Editable)
		return nil
	})
	m.options.EXPECT().Save(layout, opts).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_UpdateChangedAndClean(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	manifest.Packages = manifest.Packages[:1]
	opts := testOptions(t)
	opts.Mode = domain.ModeUpdate
	opts.PackageManager = false
	opts.Clean = true
	opts.Settings.CacheDir = ""
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()
	require.NoError(t, os.MkdirAll(layout.SourceDir("petsc"), 0o750))

	m.py.EXPECT().Exists().Return(true)
	m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil)
	m.py.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(domain.NotFound()).AnyTimes()
	gomock.InOrder(
		m.scm.EXPECT().Update(gomock.Any(), layout.SourceDir("petsc"), "firedrake").Return(true, nil),
		m.py.EXPECT().Uninstall(gomock.Any(), "petsc").Return(nil),
		m.py.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil),
		m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
	)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_UpdateRebuildsDependents(t *testing.T) {
	i, m := setupInstallerTest(t, "firedrake")
	manifest := testManifest()
	opts := testOptions(t)
	opts.Mode = domain.ModeUpdate
	opts.PackageManager = false
	opts.Settings.CacheDir = ""
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()

	for _, repo := range []string{"petsc", "firedrake"} {
		require.NoError(t, os.MkdirAll(layout.SourceDir(repo), 0o750))
	}

	m.py.EXPECT().Exists().Return(true)
	m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil)
	m.scm.EXPECT().Update(gomock.Any(), layout.SourceDir("petsc"), "firedrake").Return(true, nil)
	m.scm.EXPECT().Update(gomock.Any(), layout.SourceDir("firedrake"), "master").Return(false, nil)
	m.py.EXPECT().Locate(gomock.Any(), "petsc").Return(domain.Found("/site/petsc")).AnyTimes()

	var built []string
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.PipRequest) error {
		built = append(built, req.Name)
		assert.False(t, req.Editable)
		return nil
	}).Times(2)
	m.options.EXPECT().Save(layout, opts).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
	assert.Equal(t, []string{"petsc", "firedrake"}, built, "firedrake depends on the updated petsc")
}

func TestInstaller_Run_UpdateMissingEnvironment(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)
	opts.Mode = domain.ModeUpdate
	opts.PackageManager = false
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(false)

	err := i.Run(context.Background(), manifest, testPlan(t, manifest), opts)
	require.ErrorIs(t, err, domain.ErrEnvironmentMissing)
}

func TestInstaller_Run_ChangeSetCheckout(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)
	opts.PackageManager = false
	opts.DisableSSH = true
	opts.Settings.CacheDir = ""
	opts.Settings.Change = domain.ChangeSet{Slug: "firedrakeproject/firedrake", Branch: "master", Commit: "abc123"}
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.py.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(domain.NotFound()).AnyTimes()
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), false).Return(nil).Times(2)
	m.scm.EXPECT().CheckoutChange(gomock.Any(), layout.SourceDir("firedrake"), opts.Settings.Change).Return(nil)
	m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_HonourPETScDir(t *testing.T) {
	i, m := setupInstallerTest(t, "petsc")
	manifest := testManifest()
	opts := testOptions(t)
	opts.PackageManager = false
	opts.HonourPETScDir = true
	opts.MinimalPETSc = true
	opts.Settings.CacheDir = ""
	opts.Settings.PETSc = domain.PETScSettings{Dir: "/opt/petsc", Arch: "arch-linux-c-opt", ConfigureOptions: "--with-cuda"}
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Install(gomock.Any(), domain.PipRequest{Target: "numpy"}).Return(nil)
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrSkipped, true)
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrDetail, "provided by PETSC_DIR")
	m.py.EXPECT().Install(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.PipRequest) error {
		assert.Equal(t, "firedrake", req.Name)
		assert.False(t, req.Editable, "editable installs need developer mode")
		assert.Equal(t, map[string]string{
			"PETSC_CONFIGURE_OPTIONS": "--with-debugging=0 --with-cuda",
			"PETSC_DIR":               "/opt/petsc",
			"PETSC_ARCH":              "arch-linux-c-opt",
			"HDF5_DIR":                "/opt/petsc/arch-linux-c-opt",
		}, req.Env)
		return nil
	})
	m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))
}

func TestInstaller_Run_NativeBuilds(t *testing.T) {
	i, m := setupInstallerTest(t)
	n := domain.NewInternedString
	manifest := &domain.Manifest{
		Version: "1",
		Repositories: []domain.Repository{
			{Name: n("glpk"), Slug: "firedrakeproject/glpk", Host: "github.com"},
			{Name: n("libsupermesh"), Slug: "firedrakeproject/libsupermesh", Host: "github.com"},
		},
		Packages: []domain.Package{
			{Name: n("glpk"), Repository: n("glpk"), Kind: domain.BuildAutotools, Bootstrap: []string{"autoreconf", "-fi"}, Args: []string{"--disable-static"}},
			{Name: n("libsupermesh"), Repository: n("libsupermesh"), Kind: domain.BuildCMake, Args: []string{"-DBUILD_SHARED_LIBS=ON"}},
		},
	}
	opts := testOptions(t)
	opts.PackageManager = false
	opts.Settings.CacheDir = ""
	layout := domain.NewLayout(opts.VenvName)
	m.allToolsFound()

	m.py.EXPECT().Exists().Return(false)
	m.py.EXPECT().Create(gomock.Any()).Return(nil)
	m.py.EXPECT().Locate(gomock.Any(), gomock.Any()).Return(domain.NotFound()).AnyTimes()
	m.scm.EXPECT().Clone(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var ran []string
	var dirs []string
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd domain.Command) error {
		ran = append(ran, cmd.String())
		dirs = append(dirs, cmd.Dir)
		assert.Equal(t, layout.Root, cmd.Env["VIRTUAL_ENV"])
		assert.Equal(t, layout.BinDir(), cmd.Env["PATH"])
		return nil
	}).Times(7)
	m.options.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, i.Run(context.Background(), manifest, testPlan(t, manifest), opts))

	glpk := layout.SourceDir("glpk")
	build := filepath.Join(layout.SourceDir("libsupermesh"), "build")
	assert.Equal(t, []string{
		"autoreconf -fi",
		"./configure --prefix=" + layout.Root + " --disable-static",
		"make",
		"make install",
		"cmake .. -DCMAKE_INSTALL_PREFIX=" + layout.Root + " -DBUILD_SHARED_LIBS=ON",
		"make",
		"make install",
	}, ran)
	assert.Equal(t, []string{glpk, glpk, glpk, glpk, build, build, build}, dirs)
	assert.DirExists(t, build)
}

func TestInstaller_WriteCache(t *testing.T) {
	i, m := setupInstallerTest(t, "petsc")
	manifest := testManifest()
	opts := testOptions(t)
	layout := domain.NewLayout(opts.VenvName)

	m.py.EXPECT().Exists().Return(true)
	m.cache.EXPECT().Write(gomock.Any(), domain.CacheEntryFor(layout, manifest.Packages[0]), m.py).Return(false, nil)
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrSkipped, true)
	m.spans["petsc"].EXPECT().SetAttribute(domain.StepAttrDetail, "up to date")

	require.NoError(t, i.WriteCache(context.Background(), testPlan(t, manifest), opts))
}

func TestInstaller_WriteCache_Errors(t *testing.T) {
	t.Run("cache disabled", func(t *testing.T) {
		i, _ := setupInstallerTest(t)
		manifest := testManifest()
		opts := testOptions(t)
		opts.Settings.CacheDir = ""

		err := i.WriteCache(context.Background(), testPlan(t, manifest), opts)
		require.ErrorIs(t, err, domain.ErrCacheDisabled)
	})

	t.Run("environment missing", func(t *testing.T) {
		i, m := setupInstallerTest(t)
		manifest := testManifest()
		m.py.EXPECT().Exists().Return(false)

		err := i.WriteCache(context.Background(), testPlan(t, manifest), testOptions(t))
		require.ErrorIs(t, err, domain.ErrEnvironmentMissing)
	})

	t.Run("write failure", func(t *testing.T) {
		i, m := setupInstallerTest(t)
		manifest := testManifest()
		writeErr := errors.New("permission denied")
		m.py.EXPECT().Exists().Return(true)
		m.cache.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, writeErr)

		err := i.WriteCache(context.Background(), testPlan(t, manifest), testOptions(t))
		require.ErrorIs(t, err, writeErr)
	})
}

func TestInstaller_CacheStatus(t *testing.T) {
	i, m := setupInstallerTest(t)
	manifest := testManifest()
	opts := testOptions(t)
	layout := domain.NewLayout(opts.VenvName)

	entry := domain.CacheEntryFor(layout, manifest.Packages[0])
	want := []domain.CacheReport{{Name: "petsc", Decision: domain.CacheHit}}
	m.cache.EXPECT().Status(gomock.Any(), []domain.CacheEntry{entry}).Return(want)

	got, err := i.CacheStatus(context.Background(), testPlan(t, manifest), opts)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	opts.Settings.CacheDir = ""
	_, err = i.CacheStatus(context.Background(), testPlan(t, manifest), opts)
	require.ErrorIs(t, err, domain.ErrCacheDisabled)
}
