package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/firedrake-install/internal/app"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mainMocks struct {
	settings *mocks.MockSettingsLoader
	logger   *mocks.MockLogger
	app      *app.App
}

func newMainMocks(t *testing.T) mainMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettingsLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	application := app.New(
		mocks.NewMockManifestLoader(ctrl),
		settings,
		mocks.NewMockOptionsStore(ctrl),
		mocks.NewMockRunner(ctrl),
		mocks.NewMockSourceControl(ctrl),
		mocks.NewMockPackageManager(ctrl),
		mocks.NewMockEnvironmentFactory(ctrl),
		logger,
	)
	return mainMocks{settings: settings, logger: logger, app: application}
}

func (m mainMocks) provider(_ context.Context) (*app.Components, func(), error) {
	return app.NewComponents(m.app, m.logger), func() {}, nil
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	m := newMainMocks(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, m.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	m := newMainMocks(t)
	m.settings.EXPECT().Load().Return(domain.Settings{}, errors.New("settings failed"))
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"install", "--venv-name", t.TempDir()}, io.Discard, m.provider,
		func(a *app.App) {
			a.WithOutput(io.Discard)
		})

	assert.Equal(t, 1, exitCode)
}

// TestRun_UnknownCommand verifies that cobra errors are reported through the logger.
func TestRun_UnknownCommand(t *testing.T) {
	m := newMainMocks(t)
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"frobnicate"}, io.Discard, m.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	m := newMainMocks(t)
	blockCh := make(chan struct{})
	m.settings.EXPECT().Load().DoAndReturn(func() (domain.Settings, error) {
		select {
		case <-blockCh:
			return domain.Settings{}, context.Canceled
		case <-time.After(5 * time.Second):
			return domain.Settings{}, errors.New("timeout in mock")
		}
	})
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"install", "--venv-name", t.TempDir()}, io.Discard, m.provider)
	}()

	// Give run() time to reach Load().
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}
