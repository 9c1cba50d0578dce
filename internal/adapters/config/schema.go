package config

import "time"

// ManifestFile represents the structure of the manifest YAML file.
type ManifestFile struct {
	Version       string          `yaml:"version"`
	System        SystemDTO       `yaml:"system"`
	Prerequisites []string        `yaml:"prerequisites"`
	PETSc         PETScDTO        `yaml:"petsc"`
	Repositories  []RepositoryDTO `yaml:"repositories"`
	Packages      []PackageDTO    `yaml:"packages"`
}

// SystemDTO lists the operating system packages per package manager.
type SystemDTO struct {
	Apt  []string `yaml:"apt"`
	Brew []string `yaml:"brew"`
}

// PETScDTO holds the PETSc configure option sets.
type PETScDTO struct {
	Configure []string `yaml:"configure"`
	Minimal   []string `yaml:"minimal"`
}

// RepositoryDTO represents a repository definition in the manifest.
type RepositoryDTO struct {
	Name   string `yaml:"name"`
	Slug   string `yaml:"slug"`
	Branch string `yaml:"branch"`
	Host   string `yaml:"host"`
}

// PackageDTO represents a package definition in the manifest.
type PackageDTO struct {
	Name            string            `yaml:"name"`
	Repository      string            `yaml:"repository"`
	Subdir          string            `yaml:"subdir"`
	Build           string            `yaml:"build"`
	DependsOn       []string          `yaml:"dependsOn"`
	Module          string            `yaml:"module"`
	Cache           bool              `yaml:"cache"`
	Editable        bool              `yaml:"editable"`
	NoBinary        bool              `yaml:"noBinary"`
	ProvidedByPETSc bool              `yaml:"providedByPetsc"`
	Addon           bool              `yaml:"addon"`
	Environment     map[string]string `yaml:"environment"`
	Bootstrap       []string          `yaml:"bootstrap"`
	Args            []string          `yaml:"args"`
}

// SettingsFile is the layered settings tree decoded by koanf.
type SettingsFile struct {
	CI                CIDTO         `koanf:"ci"`
	CacheDir          string        `koanf:"cache_dir"`
	PETSc             PETScEnvDTO   `koanf:"petsc"`
	Change            ChangeDTO     `koanf:"change"`
	UninstallRetries  int           `koanf:"uninstall_retries"`
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval"`
}

// CIDTO holds the CI harness markers.
type CIDTO struct {
	Travis  bool `koanf:"travis"`
	Generic bool `koanf:"generic"`
}

// PETScEnvDTO describes an external PETSc installation.
type PETScEnvDTO struct {
	ConfigureOptions string `koanf:"configure_options"`
	Dir              string `koanf:"dir"`
	Arch             string `koanf:"arch"`
}

// ChangeDTO identifies the change set under test in CI.
type ChangeDTO struct {
	Slug              string `koanf:"slug"`
	Branch            string `koanf:"branch"`
	PullRequestBranch string `koanf:"pull_request_branch"`
	Commit            string `koanf:"commit"`
}
