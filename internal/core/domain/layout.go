package domain

import "path/filepath"

const (
	// DefaultVenvName is the default name of the virtual environment directory.
	DefaultVenvName = "firedrake"

	// SrcDirName holds the cloned dependency source trees.
	SrcDirName = "src"

	// BinDirName holds the environment executables.
	BinDirName = "bin"

	// EtcDirName holds installer metadata.
	EtcDirName = "etc"

	// SavedOptionsFile records the options chosen at install time.
	SavedOptionsFile = "firedrake-install.json"

	// UpdateScriptName is the generated follow-up update command.
	UpdateScriptName = "firedrake-update"

	// LogFileName is the name of the debug log file.
	LogFileName = "firedrake-install.log"

	// CacheArtifactDirName is the artifact directory inside a cache entry.
	CacheArtifactDirName = "artifact"

	// CacheTokenFileName is the identity token file inside a cache entry.
	CacheTokenFileName = "identity"

	// AppName names the per-user config and cache directories.
	AppName = "firedrake-install"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for generated scripts (rwxr-xr-x).
	ExecPerm = 0o755
)

// Layout describes the filesystem layout of an installation.
type Layout struct {
	// Root is the absolute path of the virtual environment.
	Root string
}

// NewLayout returns the layout rooted at the given environment directory.
func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

// SrcDir returns the directory holding cloned source trees.
func (l Layout) SrcDir() string {
	return filepath.Join(l.Root, SrcDirName)
}

// SourceDir returns the source tree of a single repository.
func (l Layout) SourceDir(repo string) string {
	return filepath.Join(l.Root, SrcDirName, repo)
}

// BinDir returns the environment executable directory.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, BinDirName)
}

// Python returns the environment interpreter.
func (l Layout) Python() string {
	return filepath.Join(l.Root, BinDirName, "python")
}

// SavedOptionsPath returns the path of the recorded install options.
func (l Layout) SavedOptionsPath() string {
	return filepath.Join(l.Root, EtcDirName, SavedOptionsFile)
}

// UpdateScriptPath returns the path of the generated update command.
func (l Layout) UpdateScriptPath() string {
	return filepath.Join(l.Root, BinDirName, UpdateScriptName)
}

// LogPath returns the path of the debug log.
func (l Layout) LogPath() string {
	return filepath.Join(l.Root, LogFileName)
}

// CacheLayout describes the persisted cache: one directory per dependency
// holding the artifact copy and a single token file.
type CacheLayout struct {
	Root string
}

// EntryDir returns the directory of a cache entry.
func (c CacheLayout) EntryDir(name string) string {
	return filepath.Join(c.Root, name)
}

// ArtifactDir returns the cached artifact directory of an entry.
func (c CacheLayout) ArtifactDir(name string) string {
	return filepath.Join(c.Root, name, CacheArtifactDirName)
}

// TokenPath returns the identity token file of an entry.
func (c CacheLayout) TokenPath(name string) string {
	return filepath.Join(c.Root, name, CacheTokenFileName)
}
