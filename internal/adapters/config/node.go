package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/firedrake-install/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest loader Graft node.
	ManifestNodeID graft.ID = "adapter.config.manifest"
	// SettingsNodeID is the unique identifier for the settings loader Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
	// OptionsNodeID is the unique identifier for the saved options Graft node.
	OptionsNodeID graft.ID = "adapter.config.options"
)

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestLoader, error) {
			return NewManifestLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.SettingsLoader]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsLoader, error) {
			return NewSettingsLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.OptionsStore]{
		ID:        OptionsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OptionsStore, error) {
			return NewOptionsStore(), nil
		},
	})
}
