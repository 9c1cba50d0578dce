package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

// SettingsFileName is the optional per-user settings file under the XDG config directory.
const SettingsFileName = "settings.yaml"

// envKeys maps the consumed environment variables onto settings keys.
var envKeys = map[string]string{
	"TRAVIS":                       "ci.travis",
	"CI":                           "ci.generic",
	"FIREDRAKE_CACHE_DIR":          "cache_dir",
	"PETSC_CONFIGURE_OPTIONS":      "petsc.configure_options",
	"PETSC_DIR":                    "petsc.dir",
	"PETSC_ARCH":                   "petsc.arch",
	"TRAVIS_REPO_SLUG":             "change.slug",
	"TRAVIS_BRANCH":                "change.branch",
	"TRAVIS_PULL_REQUEST_BRANCH":   "change.pull_request_branch",
	"TRAVIS_COMMIT":                "change.commit",
	"FIREDRAKE_UNINSTALL_RETRIES":  "uninstall_retries",
	"FIREDRAKE_HEARTBEAT_INTERVAL": "heartbeat_interval",
}

var _ ports.SettingsLoader = (*SettingsLoader)(nil)

// SettingsLoader implements ports.SettingsLoader with koanf. Layers are
// applied in order: built-in defaults, the settings file, the environment.
type SettingsLoader struct {
	path string
}

// NewSettingsLoader creates a SettingsLoader reading the settings file from
// the XDG config directories.
func NewSettingsLoader() *SettingsLoader {
	path, err := xdg.SearchConfigFile(filepath.Join(domain.AppName, SettingsFileName))
	if err != nil {
		path = ""
	}
	return &SettingsLoader{path: path}
}

// NewSettingsLoaderFrom creates a SettingsLoader reading the given settings
// file. An empty path skips the file layer.
func NewSettingsLoaderFrom(path string) *SettingsLoader {
	return &SettingsLoader{path: path}
}

// Load resolves the settings of the current run.
func (l *SettingsLoader) Load() (domain.Settings, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"cache_dir":          filepath.Join(xdg.CacheHome, domain.AppName),
		"uninstall_retries":  domain.DefaultUninstallRetries,
		"heartbeat_interval": domain.DefaultHeartbeatInterval.String(),
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}

	if l.path != "" {
		if _, err := os.Stat(l.path); err == nil {
			if err := k.Load(file.Provider(l.path), yaml.Parser()); err != nil {
				err = zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
				return domain.Settings{}, zerr.With(err, "path", l.path)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			err = zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
			return domain.Settings{}, zerr.With(err, "path", l.path)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", mapEnv), nil); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}

	var sf SettingsFile
	if err := k.Unmarshal("", &sf); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}
	return toSettings(&sf), nil
}

// mapEnv keeps the consumed variables with a non-empty value. Harness
// markers count as set unless they read "false" or "0".
func mapEnv(name, value string) (string, any) {
	key, ok := envKeys[name]
	if !ok || value == "" {
		return "", nil
	}
	if strings.HasPrefix(key, "ci.") {
		return key, value != "false" && value != "0"
	}
	return key, value
}

func toSettings(sf *SettingsFile) domain.Settings {
	s := domain.Settings{
		CI:       domain.CISettings{Travis: sf.CI.Travis, Generic: sf.CI.Generic},
		CacheDir: sf.CacheDir,
		PETSc: domain.PETScSettings{
			ConfigureOptions: sf.PETSc.ConfigureOptions,
			Dir:              sf.PETSc.Dir,
			Arch:             sf.PETSc.Arch,
		},
		Change: domain.ChangeSet{
			Slug:              sf.Change.Slug,
			Branch:            sf.Change.Branch,
			PullRequestBranch: sf.Change.PullRequestBranch,
			Commit:            sf.Change.Commit,
		},
		UninstallRetries:  sf.UninstallRetries,
		HeartbeatInterval: sf.HeartbeatInterval,
	}
	if s.UninstallRetries <= 0 {
		s.UninstallRetries = domain.DefaultUninstallRetries
	}
	if s.HeartbeatInterval <= 0 {
		s.HeartbeatInterval = domain.DefaultHeartbeatInterval
	}
	return s
}
