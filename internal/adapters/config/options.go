package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OptionsStore = (*OptionsStore)(nil)

// OptionsStore implements ports.OptionsStore with a JSON file inside the
// environment and a generated shell script that re-runs the installer in
// update mode.
type OptionsStore struct {
	executable string
}

// NewOptionsStore creates an OptionsStore whose update script invokes the
// running executable.
func NewOptionsStore() *OptionsStore {
	exe, err := os.Executable()
	if err != nil {
		exe = domain.AppName
	}
	return NewOptionsStoreFor(exe)
}

// NewOptionsStoreFor creates an OptionsStore whose update script invokes executable.
func NewOptionsStoreFor(executable string) *OptionsStore {
	return &OptionsStore{executable: executable}
}

// Load reads the options recorded in the environment.
func (s *OptionsStore) Load(layout domain.Layout) (domain.InstallOptions, error) {
	path := layout.SavedOptionsPath()
	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the environment layout
	if err != nil {
		err = zerr.Wrap(err, domain.ErrSavedOptionsReadFailed.Error())
		return domain.InstallOptions{}, zerr.With(err, "path", path)
	}

	opts := domain.DefaultInstallOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		err = zerr.Wrap(err, domain.ErrSavedOptionsReadFailed.Error())
		return domain.InstallOptions{}, zerr.With(err, "path", path)
	}
	opts.VenvName = layout.Root
	return opts, nil
}

// Save records opts in the environment and writes the update script.
func (s *OptionsStore) Save(layout domain.Layout, opts domain.InstallOptions) error {
	opts.VenvName = layout.Root
	data, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSavedOptionsWriteFailed.Error())
	}

	path := layout.SavedOptionsPath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSavedOptionsWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // Path is derived from the environment layout
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSavedOptionsWriteFailed.Error()), "path", path)
	}

	return s.writeUpdateScript(layout, opts)
}

func (s *OptionsStore) writeUpdateScript(layout domain.Layout, opts domain.InstallOptions) error {
	path := layout.UpdateScriptPath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUpdateScriptFailed.Error()), "path", path)
	}
	//nolint:gosec // The script must be executable
	if err := os.WriteFile(path, []byte(UpdateScript(s.executable, opts)), domain.ExecPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUpdateScriptFailed.Error()), "path", path)
	}
	if err := os.Chmod(path, domain.ExecPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUpdateScriptFailed.Error()), "path", path)
	}
	return nil
}

// UpdateScript renders the follow-up update command for opts.
func UpdateScript(executable string, opts domain.InstallOptions) string {
	words := append([]string{executable}, opts.UpdateArgs()...)
	for i, w := range words {
		words[i] = shellQuote(w)
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("# Generated by " + domain.AppName + ". Updates this environment.\n")
	b.WriteString("exec " + strings.Join(words, " ") + " \"$@\"\n")
	return b.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
