package domain

import "go.trai.ch/zerr"

var (
	// ErrPackageAlreadyExists is returned when a manifest declares the same package twice.
	ErrPackageAlreadyExists = zerr.New("package already exists")

	// ErrMissingDependency is returned when a package depends on a package that is not declared.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when package dependencies form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownRepository is returned when a package references an undeclared repository.
	ErrUnknownRepository = zerr.New("unknown repository")

	// ErrInvalidPackageName is returned when a package or repository name contains invalid characters.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrInvalidBuildKind is returned when a package declares an unsupported build kind.
	ErrInvalidBuildKind = zerr.New("invalid build kind, expected 'pip', 'autotools' or 'cmake'")

	// ErrUnknownAddon is returned when an optional add-on package is requested but not declared.
	ErrUnknownAddon = zerr.New("unknown add-on package")

	// ErrManifestReadFailed is returned when the manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrSettingsLoadFailed is returned when layered settings cannot be loaded.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")

	// ErrSavedOptionsReadFailed is returned when the options recorded at install time cannot be read.
	ErrSavedOptionsReadFailed = zerr.New("failed to read saved install options")

	// ErrSavedOptionsWriteFailed is returned when the install options cannot be recorded.
	ErrSavedOptionsWriteFailed = zerr.New("failed to write saved install options")

	// ErrEnvironmentExists is returned when installing into an existing virtual environment.
	ErrEnvironmentExists = zerr.New("virtual environment already exists, use 'update' instead")

	// ErrEnvironmentMissing is returned when updating a virtual environment that does not exist.
	ErrEnvironmentMissing = zerr.New("virtual environment not found")

	// ErrInstallFailed is returned when the installation run fails.
	ErrInstallFailed = zerr.New("installation failed")

	// ErrToolFailed is returned when an external tool exits with a non-zero status.
	ErrToolFailed = zerr.New("external command failed")

	// ErrToolNotFound is returned when an external tool cannot be found on PATH.
	ErrToolNotFound = zerr.New("external command not found")

	// ErrUninstallCeiling is returned when pip keeps reporting a package as installed
	// after the maximum number of uninstall rounds.
	ErrUninstallCeiling = zerr.New("package still installed after maximum uninstall attempts")

	// ErrBuildFailed is returned when building a package fails.
	ErrBuildFailed = zerr.New("package build failed")

	// ErrCloneFailed is returned when cloning a repository fails.
	ErrCloneFailed = zerr.New("failed to clone repository")

	// ErrCheckoutFailed is returned when checking out a revision fails.
	ErrCheckoutFailed = zerr.New("failed to check out revision")

	// ErrCacheCopyFailed is returned when copying a cached artifact fails.
	ErrCacheCopyFailed = zerr.New("failed to copy cached artifact")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheDisabled is returned when a cache operation is requested without a cache directory.
	ErrCacheDisabled = zerr.New("no cache directory configured")

	// ErrUpdateScriptFailed is returned when the follow-up update command cannot be written.
	ErrUpdateScriptFailed = zerr.New("failed to write update script")
)
