// Package git implements source control and source identity on top of the git CLI.
package git

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceControl = (*Git)(nil)

// Git runs git commands through a ports.Runner.
type Git struct {
	runner ports.Runner
}

// New creates a new Git adapter.
func New(runner ports.Runner) *Git {
	return &Git{runner: runner}
}

// Revision returns the identity of the tree at dir: its HEAD commit.
// A missing directory, a directory outside version control or a failing
// git all yield the unknown identity.
func (g *Git) Revision(ctx context.Context, dir string) domain.Identity {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.UnknownIdentity()
	}

	rev, err := g.runner.Output(ctx, domain.NewCommand("git", "rev-parse", "HEAD").In(dir))
	if err != nil {
		return domain.UnknownIdentity()
	}
	return domain.NewIdentity(rev)
}

// Clone clones the repository into dest, checking out its branch when set.
func (g *Git) Clone(ctx context.Context, repo domain.Repository, dest string, ssh bool) error {
	args := []string{"clone", "--recursive"}
	if repo.Branch != "" {
		args = append(args, "--branch", repo.Branch)
	}
	args = append(args, repo.URL(ssh), filepath.Base(dest))

	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create source directory"), "path", filepath.Dir(dest))
	}

	cmd := domain.NewCommand("git", args...).In(filepath.Dir(dest))
	if err := g.runner.Run(ctx, cmd); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCloneFailed.Error()), "repository", repo.Slug)
		return zerr.With(err, "url", repo.URL(ssh))
	}
	return nil
}

// Checkout checks out ref in the tree at dir.
func (g *Git) Checkout(ctx context.Context, dir, ref string) error {
	if err := g.runner.Run(ctx, domain.NewCommand("git", "checkout", ref).In(dir)); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCheckoutFailed.Error()), "ref", ref), "dir", dir)
	}
	return nil
}

// Update fetches the remote, checks out branch when set and fast-forwards.
// It reports whether HEAD moved.
func (g *Git) Update(ctx context.Context, dir, branch string) (bool, error) {
	before := g.Revision(ctx, dir)

	if err := g.runner.Run(ctx, domain.NewCommand("git", "fetch", "--tags", "origin").In(dir)); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to fetch"), "dir", dir)
	}
	if branch != "" {
		if err := g.Checkout(ctx, dir, branch); err != nil {
			return false, err
		}
	}
	if err := g.runner.Run(ctx, domain.NewCommand("git", "pull", "--ff-only").In(dir)); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to pull"), "dir", dir)
	}
	if err := g.runner.Run(ctx, domain.NewCommand("git", "submodule", "update", "--init", "--recursive").In(dir)); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to update submodules"), "dir", dir)
	}

	after := g.Revision(ctx, dir)
	return !before.Matches(after), nil
}

// CheckoutChange fetches the branch of a proposed change set and checks out its commit.
func (g *Git) CheckoutChange(ctx context.Context, dir string, change domain.ChangeSet) error {
	if ref := change.Ref(); ref != "" {
		if err := g.runner.Run(ctx, domain.NewCommand("git", "fetch", "origin", ref).In(dir)); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to fetch change set"), "ref", ref)
		}
	}
	return g.Checkout(ctx, dir, change.Commit)
}
