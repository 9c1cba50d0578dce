package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/firedrake-install/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/firedrake-install/internal/adapters/environment" //nolint:depguard // Wired in app layer
	"go.trai.ch/firedrake-install/internal/adapters/git"         //nolint:depguard // Wired in app layer
	"go.trai.ch/firedrake-install/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/firedrake-install/internal/adapters/shell"       //nolint:depguard // Wired in app layer
	"go.trai.ch/firedrake-install/internal/adapters/sysdeps"     //nolint:depguard // Wired in app layer
	"go.trai.ch/firedrake-install/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ManifestNodeID,
			config.SettingsNodeID,
			config.OptionsNodeID,
			shell.NodeID,
			git.NodeID,
			sysdeps.NodeID,
			environment.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}

	options, err := graft.Dep[ports.OptionsStore](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}

	scm, err := graft.Dep[ports.SourceControl](ctx)
	if err != nil {
		return nil, err
	}

	system, err := graft.Dep[ports.PackageManager](ctx)
	if err != nil {
		return nil, err
	}

	envs, err := graft.Dep[ports.EnvironmentFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, settings, options, runner, scm, system, envs, log), nil
}
