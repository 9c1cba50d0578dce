package environment_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/firedrake-install/internal/adapters/cache"
	"go.trai.ch/firedrake-install/internal/adapters/environment"
	"go.trai.ch/firedrake-install/internal/adapters/python"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	f := environment.NewFactory(
		runner,
		mocks.NewMockLogger(ctrl),
		mocks.NewMockIdentityProvider(ctrl),
		mocks.NewMockFileSystem(ctrl),
		mocks.NewMockTreeHasher(ctrl),
	)

	root := filepath.Join(t.TempDir(), "cache")
	store, ok := f.Cache(root).(*cache.Store)
	assert.True(t, ok)
	assert.Equal(t, root, store.Root())

	layout := domain.NewLayout(filepath.Join(t.TempDir(), "venv"))
	env, ok := f.Python(layout, 0).(*python.Env)
	assert.True(t, ok)

	runner.EXPECT().Output(gomock.Any(), gomock.Any()).Return("/venv/lib/python3.12/site-packages", nil)
	dir, err := env.SitePackages(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "/venv/lib/python3.12/site-packages", dir)
}
