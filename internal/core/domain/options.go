package domain

import (
	"slices"
	"time"
)

// Mode selects between a fresh install and an update of an existing environment.
type Mode string

const (
	// ModeInstall creates a new environment.
	ModeInstall Mode = "install"
	// ModeUpdate updates an existing environment.
	ModeUpdate Mode = "update"
)

const (
	// DefaultUninstallRetries bounds the pip uninstall loop.
	DefaultUninstallRetries = 10

	// DefaultHeartbeatInterval is the keepalive period under a CI harness.
	DefaultHeartbeatInterval = 5 * time.Minute
)

// CISettings holds the markers of an external CI harness.
type CISettings struct {
	Travis  bool
	Generic bool
}

// Active reports whether the process runs under a CI harness.
func (c CISettings) Active() bool {
	return c.Travis || c.Generic
}

// ChangeSet identifies a proposed change to check out under CI.
type ChangeSet struct {
	Slug              string
	Branch            string
	PullRequestBranch string
	Commit            string
}

// Valid reports whether the change set names a repository and a commit.
func (c ChangeSet) Valid() bool {
	return c.Slug != "" && c.Commit != ""
}

// Ref returns the branch to fetch before checking out the commit.
func (c ChangeSet) Ref() string {
	if c.PullRequestBranch != "" {
		return c.PullRequestBranch
	}
	return c.Branch
}

// PETScSettings describes an external PETSc installation and extra configure options.
type PETScSettings struct {
	ConfigureOptions string
	Dir              string
	Arch             string
}

// Settings are the environment-derived settings of a run.
type Settings struct {
	CI                CISettings
	CacheDir          string
	PETSc             PETScSettings
	Change            ChangeSet
	UninstallRetries  int
	HeartbeatInterval time.Duration
}

// InstallOptions is the explicit configuration threaded through every operation.
type InstallOptions struct {
	Mode           Mode     `json:"-"`
	VenvName       string   `json:"venv_name"`
	PackageManager bool     `json:"package_manager"`
	Sudo           bool     `json:"sudo"`
	Developer      bool     `json:"developer"`
	Addons         []string `json:"addons,omitempty"`
	DisableSSH     bool     `json:"disable_ssh"`
	MinimalPETSc   bool     `json:"minimal_petsc"`
	HonourPETScDir bool     `json:"honour_petsc_dir"`
	ManifestPath   string   `json:"manifest,omitempty"`
	Rebuild        bool     `json:"-"`
	Clean          bool     `json:"-"`
	WriteCacheOnly bool     `json:"-"`
	Verbose        bool     `json:"-"`
	Settings       Settings `json:"-"`
}

// DefaultInstallOptions returns the options of a plain install.
func DefaultInstallOptions() InstallOptions {
	return InstallOptions{
		Mode:           ModeInstall,
		VenvName:       DefaultVenvName,
		PackageManager: true,
		Settings: Settings{
			UninstallRetries:  DefaultUninstallRetries,
			HeartbeatInterval: DefaultHeartbeatInterval,
		},
	}
}

// UpdateArgs derives the arguments of the follow-up update command from the
// options chosen at install time.
func (o InstallOptions) UpdateArgs() []string {
	args := []string{"update", "--venv-name", o.VenvName}
	if !o.PackageManager {
		args = append(args, "--no-package-manager")
	}
	if o.Sudo {
		args = append(args, "--sudo")
	}
	if o.Developer {
		args = append(args, "--developer")
	}
	if o.DisableSSH {
		args = append(args, "--disable-ssh")
	}
	if o.MinimalPETSc {
		args = append(args, "--minimal-petsc")
	}
	if o.HonourPETScDir {
		args = append(args, "--honour-petsc-dir")
	}
	if o.ManifestPath != "" {
		args = append(args, "--manifest", o.ManifestPath)
	}
	addons := slices.Clone(o.Addons)
	slices.Sort(addons)
	for _, a := range addons {
		args = append(args, "--install", a)
	}
	return args
}

// CacheEnabled reports whether the run may read or write the artifact cache.
func (o InstallOptions) CacheEnabled() bool {
	return o.Settings.CacheDir != ""
}
