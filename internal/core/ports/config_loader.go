package ports

import "go.trai.ch/firedrake-install/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks

// ManifestLoader loads the install manifest.
type ManifestLoader interface {
	// Load reads the manifest at path, or the built-in manifest when path is empty.
	Load(path string) (*domain.Manifest, error)
}

// SettingsLoader loads the environment-derived settings of a run.
type SettingsLoader interface {
	Load() (domain.Settings, error)
}

// OptionsStore persists the options chosen at install time inside the environment.
type OptionsStore interface {
	// Load reads the saved options of the environment.
	Load(layout domain.Layout) (domain.InstallOptions, error)

	// Save records the options and writes the follow-up update command.
	Save(layout domain.Layout, opts domain.InstallOptions) error
}
