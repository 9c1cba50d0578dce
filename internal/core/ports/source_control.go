package ports

import (
	"context"

	"go.trai.ch/firedrake-install/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=source_control.go -destination=mocks/mock_source_control.go -package=mocks

// IdentityProvider computes the identity token of a source tree.
type IdentityProvider interface {
	// Revision returns the current revision of the tree at dir.
	// It never fails: any problem yields the unknown identity.
	Revision(ctx context.Context, dir string) domain.Identity
}

// SourceControl manages the cloned source trees.
type SourceControl interface {
	IdentityProvider

	// Clone clones the repository into dest and checks out its branch.
	Clone(ctx context.Context, repo domain.Repository, dest string, ssh bool) error

	// Checkout checks out ref in the tree at dir.
	Checkout(ctx context.Context, dir, ref string) error

	// Update fetches and fast-forwards the tree at dir to its branch.
	// It reports whether the identity of the tree changed.
	Update(ctx context.Context, dir, branch string) (bool, error)

	// CheckoutChange checks out a proposed change set in the tree at dir.
	CheckoutChange(ctx context.Context, dir string, change domain.ChangeSet) error
}
