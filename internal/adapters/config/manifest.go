// Package config loads the install manifest, the layered run settings and
// the options recorded at install time.
package config

import (
	_ "embed"
	"os"
	"regexp"

	"go.trai.ch/firedrake-install/internal/core/domain"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultHost is the git host of repositories that do not name one.
const DefaultHost = "github.com"

//go:embed manifest.yaml
var defaultManifest []byte

var validNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

var _ ports.ManifestLoader = (*ManifestLoader)(nil)

// ManifestLoader implements ports.ManifestLoader using YAML.
type ManifestLoader struct{}

// NewManifestLoader creates a new ManifestLoader.
func NewManifestLoader() *ManifestLoader {
	return &ManifestLoader{}
}

// DefaultManifest returns the embedded manifest.
func DefaultManifest() []byte {
	return defaultManifest
}

// Load reads the manifest at path, or the embedded manifest when path is empty.
func (l *ManifestLoader) Load(path string) (*domain.Manifest, error) {
	data := defaultManifest
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // path is provided by user
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a manifest. Every package, add-ons included,
// must resolve to a valid install order.
func Parse(data []byte) (*domain.Manifest, error) {
	var file ManifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	m := &domain.Manifest{
		Version:       file.Version,
		System:        domain.SystemPackages{Apt: file.System.Apt, Brew: file.System.Brew},
		Prerequisites: file.Prerequisites,
		PETSc:         domain.PETScOptions{Configure: file.PETSc.Configure, Minimal: file.PETSc.Minimal},
	}

	for _, dto := range file.Repositories {
		if err := validateName(dto.Name); err != nil {
			return nil, zerr.With(err, "kind", "repository")
		}
		host := dto.Host
		if host == "" {
			host = DefaultHost
		}
		m.Repositories = append(m.Repositories, domain.Repository{
			Name:   domain.NewInternedString(dto.Name),
			Slug:   dto.Slug,
			Branch: dto.Branch,
			Host:   host,
		})
	}

	for i := range file.Packages {
		pkg, err := buildPackage(&file.Packages[i])
		if err != nil {
			return nil, err
		}
		if _, ok := m.Repository(pkg.Repository); !ok {
			err := zerr.With(zerr.Wrap(domain.ErrUnknownRepository, "invalid manifest"), "repository", pkg.Repository.String())
			return nil, zerr.With(err, "package", pkg.Name.String())
		}
		m.Packages = append(m.Packages, pkg)
	}

	if err := validateOrder(m); err != nil {
		return nil, err
	}
	return m, nil
}

func buildPackage(dto *PackageDTO) (domain.Package, error) {
	if err := validateName(dto.Name); err != nil {
		return domain.Package{}, zerr.With(err, "kind", "package")
	}

	repo := dto.Repository
	if repo == "" {
		repo = dto.Name
	}
	kind := domain.BuildKind(dto.Build)
	if kind == "" {
		kind = domain.BuildPip
	}
	if !kind.Valid() {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidBuildKind, "invalid manifest"), "package", dto.Name)
		return domain.Package{}, zerr.With(err, "build", dto.Build)
	}

	return domain.Package{
		Name:            domain.NewInternedString(dto.Name),
		Repository:      domain.NewInternedString(repo),
		Subdir:          dto.Subdir,
		Kind:            kind,
		Dependencies:    domain.NewInternedStrings(dto.DependsOn),
		Module:          dto.Module,
		Cache:           dto.Cache,
		Editable:        dto.Editable,
		NoBinary:        dto.NoBinary,
		ProvidedByPETSc: dto.ProvidedByPETSc,
		Addon:           dto.Addon,
		Env:             dto.Environment,
		Bootstrap:       dto.Bootstrap,
		Args:            dto.Args,
	}, nil
}

// validateOrder checks the dependency graph of every declared package.
func validateOrder(m *domain.Manifest) error {
	p := domain.NewPlan()
	for i := range m.Packages {
		if err := p.AddPackage(&m.Packages[i]); err != nil {
			return err
		}
	}
	return p.Validate()
}

func validateName(name string) error {
	if !validNameRegex.MatchString(name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "invalid manifest"), "name", name)
	}
	return nil
}
