package domain

import "fmt"

// BuildKind selects how a package is built and installed.
type BuildKind string

const (
	// BuildPip installs the source tree with pip.
	BuildPip BuildKind = "pip"
	// BuildAutotools runs configure, make and make install.
	BuildAutotools BuildKind = "autotools"
	// BuildCMake runs cmake in a build directory, then make and make install.
	BuildCMake BuildKind = "cmake"
)

// Valid reports whether the build kind is supported.
func (k BuildKind) Valid() bool {
	switch k {
	case BuildPip, BuildAutotools, BuildCMake:
		return true
	default:
		return false
	}
}

// Repository is a git repository cloned into the environment's src directory.
type Repository struct {
	// Name is the directory name under src/.
	Name InternedString

	// Slug is the hosting path, e.g. "firedrakeproject/petsc".
	Slug string

	// Branch is the branch checked out after cloning.
	Branch string

	// Host is the git host, e.g. "github.com".
	Host string
}

// URL returns the clone URL, over SSH or HTTPS.
func (r Repository) URL(ssh bool) string {
	if ssh {
		return fmt.Sprintf("git@%s:%s.git", r.Host, r.Slug)
	}
	return fmt.Sprintf("https://%s/%s.git", r.Host, r.Slug)
}

// Package is one step of the install chain.
type Package struct {
	// Name identifies the package; it is also its cache entry name.
	Name InternedString

	// Repository names the source repository.
	Repository InternedString

	// Subdir is the path inside the repository to build from.
	Subdir string

	// Kind selects the build system.
	Kind BuildKind

	// Dependencies must be installed before this package.
	Dependencies []InternedString

	// Module is the importable Python module the package installs.
	// It is used to locate the installed artifact.
	Module string

	// Cache marks the package's installed artifact as cacheable.
	Cache bool

	// Editable installs the package as a reference to its source tree in developer mode.
	Editable bool

	// NoBinary forces pip to build the package from source.
	NoBinary bool

	// ProvidedByPETSc marks packages skipped when an external PETSc is honoured.
	ProvidedByPETSc bool

	// Addon marks optional packages installed only on request.
	Addon bool

	// Env holds extra build environment entries; values may reference
	// other build environment variables as ${NAME}.
	Env map[string]string

	// Bootstrap is run in the source tree before configuring.
	Bootstrap []string

	// Args are extra pip, configure or cmake arguments.
	Args []string
}

// SystemPackages lists the OS packages required per package manager.
type SystemPackages struct {
	Apt  []string
	Brew []string
}

// PETScOptions holds the configure option sets for PETSc.
type PETScOptions struct {
	Configure []string
	Minimal   []string
}

// Manifest is the declared install plan: what to clone and what to build, in order.
type Manifest struct {
	Version       string
	System        SystemPackages
	Prerequisites []string
	PETSc         PETScOptions
	Repositories  []Repository
	Packages      []Package
}

// Repository returns the repository with the given name.
func (m *Manifest) Repository(name InternedString) (Repository, bool) {
	for _, r := range m.Repositories {
		if r.Name == name {
			return r, true
		}
	}
	return Repository{}, false
}
