package ports

import (
	"context"

	"go.trai.ch/firedrake-install/internal/core/domain"
)

// CacheStore is the directory-keyed artifact cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Validate compares the live identity of the source tree with the stored token.
	// It has no side effects and degrades every failure to CacheMiss.
	Validate(ctx context.Context, entry domain.CacheEntry) domain.CacheDecision

	// Materialize replaces dest with a copy of the cached artifact.
	// The caller must have obtained CacheHit from Validate.
	Materialize(ctx context.Context, entry domain.CacheEntry, dest string) error

	// Write refreshes the entry from the installed artifact when its identity changed.
	// It reports whether anything was written.
	Write(ctx context.Context, entry domain.CacheEntry, locator ArtifactLocator) (bool, error)

	// Status reports the state of each entry.
	Status(ctx context.Context, entries []domain.CacheEntry) []domain.CacheReport
}
