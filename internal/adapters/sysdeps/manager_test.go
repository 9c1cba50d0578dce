package sysdeps_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/firedrake-install/internal/adapters/sysdeps"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var systemPackages = domain.SystemPackages{
	Apt:  []string{"build-essential", "cmake"},
	Brew: []string{"cmake", "gcc"},
}

func osRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func dpkgQuery(pkg string) domain.Command {
	return domain.NewCommand("dpkg-query", "-W", "-f=${Status}", pkg)
}

func TestManager_Detect(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		release string
		want    sysdeps.Platform
	}{
		{"macOS", "darwin", "", sysdeps.PlatformBrew},
		{"Ubuntu", "linux", "NAME=\"Ubuntu\"\nID=ubuntu\nID_LIKE=debian\n", sysdeps.PlatformApt},
		{"Debian derivative", "linux", "ID=pop\nID_LIKE=\"ubuntu debian\"\n", sysdeps.PlatformApt},
		{"Fedora", "linux", "ID=fedora\n", sysdeps.PlatformUnknown},
		{"Windows", "windows", "", sysdeps.PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sysdeps.NewManagerFor(nil, nil, tt.goos, osRelease(t, tt.release))
			assert.Equal(t, tt.want, m.Detect())
		})
	}

	t.Run("missing os-release", func(t *testing.T) {
		m := sysdeps.NewManagerFor(nil, nil, "linux", filepath.Join(t.TempDir(), "absent"))
		assert.Equal(t, sysdeps.PlatformUnknown, m.Detect())
	})
}

func TestManager_InstallApt(t *testing.T) {
	ctx := context.Background()
	ubuntu := "ID=ubuntu\n"

	t.Run("installs only missing packages with sudo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info("installing system packages: cmake")

		runner.EXPECT().LookPath("apt-get").Return(domain.Found("/usr/bin/apt-get"))
		runner.EXPECT().Output(ctx, dpkgQuery("build-essential")).Return("install ok installed", nil)
		runner.EXPECT().Output(ctx, dpkgQuery("cmake")).Return("", errors.New("no packages found"))
		runner.EXPECT().Run(ctx, domain.NewCommand("sudo", "apt-get", "install", "-y", "cmake")).Return(nil)

		m := sysdeps.NewManagerFor(runner, logger, "linux", osRelease(t, ubuntu))
		require.NoError(t, m.Install(ctx, systemPackages, true))
	})

	t.Run("nothing missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Debug(gomock.Any())

		runner.EXPECT().LookPath("apt-get").Return(domain.Found("/usr/bin/apt-get"))
		runner.EXPECT().Output(ctx, gomock.Any()).Return("install ok installed", nil).Times(2)

		m := sysdeps.NewManagerFor(runner, logger, "linux", osRelease(t, ubuntu))
		require.NoError(t, m.Install(ctx, systemPackages, false))
	})

	for _, status := range []string{"unknown ok not-installed", "install ok half-installed", "deinstall ok config-files"} {
		t.Run("reinstalls "+status, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockRunner(ctrl)
			logger := mocks.NewMockLogger(ctrl)
			logger.EXPECT().Info("installing system packages: cmake")

			runner.EXPECT().LookPath("apt-get").Return(domain.Found("/usr/bin/apt-get"))
			runner.EXPECT().Output(ctx, dpkgQuery("build-essential")).Return("install ok installed\n", nil)
			runner.EXPECT().Output(ctx, dpkgQuery("cmake")).Return(status, nil)
			runner.EXPECT().Run(ctx, domain.NewCommand("apt-get", "install", "-y", "cmake")).Return(nil)

			m := sysdeps.NewManagerFor(runner, logger, "linux", osRelease(t, ubuntu))
			require.NoError(t, m.Install(ctx, systemPackages, false))
		})
	}

	t.Run("install failure is fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any())

		runner.EXPECT().LookPath("apt-get").Return(domain.Found("/usr/bin/apt-get"))
		runner.EXPECT().Output(ctx, gomock.Any()).Return("", errors.New("not installed")).Times(2)
		runner.EXPECT().Run(ctx, domain.NewCommand("apt-get", "install", "-y", "build-essential", "cmake")).
			Return(domain.ErrToolFailed)

		m := sysdeps.NewManagerFor(runner, logger, "linux", osRelease(t, ubuntu))
		require.ErrorIs(t, m.Install(ctx, systemPackages, false), domain.ErrToolFailed)
	})
}

func TestManager_InstallBrew(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn("Homebrew must not be run with sudo, ignoring --sudo")
	logger.EXPECT().Info(gomock.Any())

	runner.EXPECT().LookPath("brew").Return(domain.Found("/opt/homebrew/bin/brew"))
	runner.EXPECT().Run(ctx, domain.NewCommand("brew", "install", "cmake", "gcc")).Return(nil)

	m := sysdeps.NewManagerFor(runner, logger, "darwin", "")
	require.NoError(t, m.Install(ctx, systemPackages, true))
}

func TestManager_NoPackageManager(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported platform", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Warn("no supported package manager found, please install the following packages manually: build-essential cmake")

		m := sysdeps.NewManagerFor(mocks.NewMockRunner(ctrl), logger, "linux", osRelease(t, "ID=arch\n"))
		require.NoError(t, m.Install(ctx, systemPackages, false))
	})

	t.Run("apt-get missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockRunner(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		runner.EXPECT().LookPath("apt-get").Return(domain.NotFound())
		logger.EXPECT().Warn("apt-get not found, please install the following packages manually: build-essential cmake")

		m := sysdeps.NewManagerFor(runner, logger, "linux", osRelease(t, "ID=debian\n"))
		require.NoError(t, m.Install(ctx, systemPackages, false))
	})
}
