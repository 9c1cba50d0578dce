// Package cache implements the source-revision keyed artifact cache.
//
// Each cached dependency owns one directory under the cache root holding a
// copy of its installed artifact and a token file with the source revision
// the artifact was built from:
//
//	<root>/<name>/artifact/
//	<root>/<name>/identity
package cache

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore on the local disk.
type Store struct {
	layout   domain.CacheLayout
	identity ports.IdentityProvider
	files    ports.FileSystem
	hasher   ports.TreeHasher
	logger   ports.Logger
}

// NewStore creates a Store rooted at root. The root is created lazily by the
// first write.
func NewStore(
	root string,
	identity ports.IdentityProvider,
	files ports.FileSystem,
	hasher ports.TreeHasher,
	logger ports.Logger,
) *Store {
	return &Store{
		layout:   domain.CacheLayout{Root: filepath.Clean(root)},
		identity: identity,
		files:    files,
		hasher:   hasher,
		logger:   logger,
	}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.layout.Root
}

// Validate compares the live identity of the entry's source tree with the
// stored token. Every failure degrades to CacheMiss.
func (s *Store) Validate(ctx context.Context, entry domain.CacheEntry) domain.CacheDecision {
	if !s.artifactExists(entry.Name) {
		return domain.CacheMiss
	}
	live := s.identity.Revision(ctx, entry.Source)
	return domain.Decide(live, s.storedIdentity(entry.Name))
}

// Materialize replaces dest with a copy of the cached artifact.
// A missing dest is fine; copy failures are returned.
func (s *Store) Materialize(_ context.Context, entry domain.CacheEntry, dest string) error {
	if err := s.files.RemoveTree(dest); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear restore destination"), "entry", entry.Name)
	}
	if err := s.files.CopyTree(s.layout.ArtifactDir(entry.Name), dest); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrCacheCopyFailed.Error()), "entry", entry.Name)
		return zerr.With(err, "dest", dest)
	}
	return nil
}

// Write refreshes the entry from the installed artifact. It does nothing
// when the artifact cannot be located, the source identity is unknown, or
// the stored token already equals the live identity.
//
// The old token is removed before the artifact is replaced, and the new
// token is published with a rename once the copy is complete, so an
// interrupted write leaves an entry without a token, which validates as a miss.
func (s *Store) Write(ctx context.Context, entry domain.CacheEntry, locator ports.ArtifactLocator) (bool, error) {
	probe := locator.Locate(ctx, entry.Module)
	if !probe.Found() {
		s.logger.Warn("cannot locate " + entry.Module + ", not caching " + entry.Name)
		return false, nil
	}

	live := s.identity.Revision(ctx, entry.Source)
	if !live.Known() {
		s.logger.Warn("source revision of " + entry.Name + " is unknown, not caching it")
		return false, nil
	}

	if live.Matches(s.storedIdentity(entry.Name)) && s.artifactExists(entry.Name) {
		s.logger.Debug("cache entry " + entry.Name + " is up to date")
		return false, nil
	}

	if err := os.MkdirAll(s.layout.EntryDir(entry.Name), domain.DirPerm); err != nil {
		return false, s.writeError(err, "create entry", entry)
	}
	if err := s.files.RemoveTree(s.layout.TokenPath(entry.Name)); err != nil {
		return false, s.writeError(err, "remove token", entry)
	}
	if err := s.files.RemoveTree(s.layout.ArtifactDir(entry.Name)); err != nil {
		return false, s.writeError(err, "remove artifact", entry)
	}
	if err := s.files.CopyTree(probe.Path(), s.layout.ArtifactDir(entry.Name)); err != nil {
		return false, s.writeError(err, "copy artifact", entry)
	}
	if err := s.publishToken(entry.Name, live); err != nil {
		return false, s.writeError(err, "publish token", entry)
	}

	s.logger.Info("cached " + entry.Name + " at revision " + live.String())
	return true, nil
}

// Status reports the state of each entry against its source tree.
func (s *Store) Status(ctx context.Context, entries []domain.CacheEntry) []domain.CacheReport {
	reports := make([]domain.CacheReport, 0, len(entries))
	for _, entry := range entries {
		report := domain.CacheReport{
			Name:     entry.Name,
			Stored:   s.storedIdentity(entry.Name),
			Live:     s.identity.Revision(ctx, entry.Source),
			Decision: domain.CacheMiss,
		}
		if s.artifactExists(entry.Name) {
			report.Decision = domain.Decide(report.Live, report.Stored)
			if digest, err := s.hasher.Digest(s.layout.ArtifactDir(entry.Name)); err == nil {
				report.Digest = digest
			}
		}
		reports = append(reports, report)
	}
	return reports
}

func (s *Store) storedIdentity(name string) domain.Identity {
	data, err := os.ReadFile(s.layout.TokenPath(name)) //nolint:gosec // Path is derived from the cache root
	if err != nil {
		return domain.UnknownIdentity()
	}
	return domain.NewIdentity(string(data))
}

func (s *Store) artifactExists(name string) bool {
	_, err := os.Lstat(s.layout.ArtifactDir(name))
	return err == nil
}

// publishToken writes the token to a temporary file in the entry directory
// and renames it into place.
func (s *Store) publishToken(name string, id domain.Identity) error {
	dir := s.layout.EntryDir(name)
	tmp, err := os.CreateTemp(dir, "."+domain.CacheTokenFileName+"-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary token file")
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("failed to remove temporary token " + tmpName)
		}
	}()

	if _, err := tmp.WriteString(id.Rev() + "\n"); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write temporary token file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temporary token file")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to set token permissions")
	}
	if err := os.Rename(tmpName, s.layout.TokenPath(name)); err != nil {
		return zerr.Wrap(err, "failed to publish token")
	}
	return nil
}

func (s *Store) writeError(err error, stage string, entry domain.CacheEntry) error {
	err = zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "entry", entry.Name)
	return zerr.With(err, "stage", stage)
}
