package python_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/firedrake-install/internal/adapters/python"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newEnv(t *testing.T, retries int) (*python.Env, *mocks.MockRunner, domain.Layout) {
	t.Helper()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	layout := domain.NewLayout(filepath.Join(t.TempDir(), "firedrake"))
	return python.NewEnv(runner, logger, layout, retries), runner, layout
}

func venvCommand(l domain.Layout, args ...string) domain.Command {
	return domain.NewCommand(l.Python(), args...).
		WithEnv("VIRTUAL_ENV", l.Root).
		WithEnv("PATH", l.BinDir())
}

func freeze(l domain.Layout) domain.Command {
	return venvCommand(l, "-m", "pip", "freeze", "-l")
}

func TestEnv_Create(t *testing.T) {
	ctx := context.Background()
	env, runner, layout := newEnv(t, 0)

	runner.EXPECT().Run(ctx, domain.NewCommand("python3", "-m", "venv", layout.Root)).Return(nil)
	require.NoError(t, env.Create(ctx))
}

func TestEnv_Exists(t *testing.T) {
	env, _, layout := newEnv(t, 0)
	assert.False(t, env.Exists())

	require.NoError(t, os.MkdirAll(layout.BinDir(), 0o750))
	require.NoError(t, os.WriteFile(layout.Python(), nil, 0o700))
	assert.True(t, env.Exists())
}

func TestEnv_Install(t *testing.T) {
	ctx := context.Background()
	env, runner, layout := newEnv(t, 0)
	src := layout.SourceDir("petsc4py")

	want := venvCommand(layout, "-m", "pip", "install", "--no-cache-dir", "--no-binary", "petsc4py", "-e", ".").
		In(src).
		WithEnv("PETSC_DIR", "/opt/petsc")
	runner.EXPECT().Run(ctx, want).Return(nil)

	require.NoError(t, env.Install(ctx, domain.PipRequest{
		Name:     "petsc4py",
		Target:   ".",
		Dir:      src,
		Editable: true,
		NoBinary: true,
		Env:      map[string]string{"PETSC_DIR": "/opt/petsc"},
	}))
}

func TestEnv_Install_Failure(t *testing.T) {
	ctx := context.Background()
	env, runner, _ := newEnv(t, 0)
	runner.EXPECT().Run(ctx, gomock.Any()).Return(zerr.Wrap(domain.ErrToolFailed, "pip exited with status 1"))

	err := env.Install(ctx, domain.PipRequest{Target: "numpy"})
	require.ErrorIs(t, err, domain.ErrToolFailed)
}

func TestEnv_Uninstall(t *testing.T) {
	ctx := context.Background()
	env, runner, layout := newEnv(t, 0)

	gomock.InOrder(
		runner.EXPECT().Output(ctx, freeze(layout)).
			Return("numpy==1.26.0\nh5py @ file:///src/h5py\nh5py-extra==0.1\n", nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "h5py")).Return(nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "h5py-extra")).Return(nil),
		runner.EXPECT().Output(ctx, freeze(layout)).Return("-e git+https://github.com/h5py/h5py#egg=h5py\n", nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "h5py")).Return(nil),
		runner.EXPECT().Output(ctx, freeze(layout)).Return("numpy==1.26.0\n", nil),
	)

	require.NoError(t, env.Uninstall(ctx, "h5py"))
}

func TestEnv_Uninstall_EditableInstalls(t *testing.T) {
	ctx := context.Background()
	env, runner, layout := newEnv(t, 0)

	modern := "## The following requirements were added by pip freeze:\n" +
		"# Editable install with no version control (firedrake==0.13.0)\n" +
		"-e /venv/src/firedrake\n" +
		"# Editable Git install with no remote (firedrake-extras==0.1)\n" +
		"-e /venv/src/extras\n" +
		"numpy==1.26.0\n"

	gomock.InOrder(
		runner.EXPECT().Output(ctx, freeze(layout)).Return(modern, nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "firedrake")).Return(nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "firedrake-extras")).Return(nil),
		runner.EXPECT().Output(ctx, freeze(layout)).Return("-e /venv/src/firedrake\nnumpy==1.26.0\n", nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "firedrake")).Return(nil),
		runner.EXPECT().Output(ctx, freeze(layout)).
			Return("-e git+https://github.com/firedrakeproject/firedrake#egg=firedrake&subdirectory=src\n", nil),
		runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "firedrake")).Return(nil),
		runner.EXPECT().Output(ctx, freeze(layout)).Return("numpy==1.26.0\n", nil),
	)

	require.NoError(t, env.Uninstall(ctx, "firedrake"))
}

func TestEnv_Uninstall_NothingInstalled(t *testing.T) {
	ctx := context.Background()
	env, runner, layout := newEnv(t, 0)
	runner.EXPECT().Output(ctx, freeze(layout)).Return("", nil)

	require.NoError(t, env.Uninstall(ctx, "petsc4py"))
}

func TestEnv_Uninstall_StopsAtCeiling(t *testing.T) {
	ctx := context.Background()
	env, runner, layout := newEnv(t, 3)

	// A package database that keeps reporting the package after every removal.
	runner.EXPECT().Output(ctx, freeze(layout)).Return("petsc4py==3.20.0\n", nil).Times(4)
	runner.EXPECT().Run(ctx, venvCommand(layout, "-m", "pip", "uninstall", "-y", "petsc4py")).Return(nil).Times(3)

	err := env.Uninstall(ctx, "petsc4py")
	require.ErrorIs(t, err, domain.ErrUninstallCeiling)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "petsc4py", zErr.Metadata()["remaining"])
}

func TestEnv_Uninstall_DefaultCeiling(t *testing.T) {
	ctx := context.Background()
	env, runner, _ := newEnv(t, 0)

	runner.EXPECT().Output(ctx, gomock.Any()).Return("slepc4py==3.20.0\n", nil).Times(domain.DefaultUninstallRetries + 1)
	runner.EXPECT().Run(ctx, gomock.Any()).Return(nil).Times(domain.DefaultUninstallRetries)

	require.ErrorIs(t, env.Uninstall(ctx, "slepc4py"), domain.ErrUninstallCeiling)
}

func TestEnv_Locate(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		env, runner, _ := newEnv(t, 0)
		runner.EXPECT().Output(ctx, gomock.Any()).Return("/venv/lib/python3.12/site-packages/petsc", nil)

		probe := env.Locate(ctx, "petsc")
		assert.True(t, probe.Found())
		assert.Equal(t, "/venv/lib/python3.12/site-packages/petsc", probe.Path())
	})

	t.Run("import failure", func(t *testing.T) {
		env, runner, _ := newEnv(t, 0)
		runner.EXPECT().Output(ctx, gomock.Any()).Return("", errors.New("exit status 1"))

		assert.False(t, env.Locate(ctx, "petsc").Found())
	})
}

func TestEnv_SitePackages(t *testing.T) {
	ctx := context.Background()
	env, runner, _ := newEnv(t, 0)
	runner.EXPECT().Output(ctx, gomock.Any()).Return("/venv/lib/python3.12/site-packages", nil)

	dir, err := env.SitePackages(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/venv/lib/python3.12/site-packages", dir)
}
