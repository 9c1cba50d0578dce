package environment

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/firedrake-install/internal/adapters/fs"
	"go.trai.ch/firedrake-install/internal/adapters/git"
	"go.trai.ch/firedrake-install/internal/adapters/logger"
	"go.trai.ch/firedrake-install/internal/adapters/shell"
	"go.trai.ch/firedrake-install/internal/core/ports"
)

// NodeID is the unique identifier for the environment factory Graft node.
const NodeID graft.ID = "adapter.environment"

func init() {
	graft.Register(graft.Node[ports.EnvironmentFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID, git.NodeID, fs.FileSystemNodeID, fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.EnvironmentFactory, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			scm, err := graft.Dep[ports.SourceControl](ctx)
			if err != nil {
				return nil, err
			}
			files, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(runner, log, scm, files, hasher), nil
		},
	})
}
