// Package domain contains the core domain models of the installer.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Plan is the validated install order of the selected packages.
type Plan struct {
	packages       map[InternedString]Package
	declared       []InternedString
	executionOrder []InternedString
}

// NewPlan creates a new empty Plan.
func NewPlan() *Plan {
	return &Plan{
		packages: make(map[InternedString]Package),
	}
}

// AddPackage adds a package to the plan.
// It returns an error if a package with the same name already exists.
func (p *Plan) AddPackage(pkg *Package) error {
	if _, exists := p.packages[pkg.Name]; exists {
		return zerr.With(ErrPackageAlreadyExists, "package", pkg.Name.String())
	}
	p.packages[pkg.Name] = *pkg
	p.declared = append(p.declared, pkg.Name)
	return nil
}

// Validate checks for missing dependencies and cycles using a topological sort.
// Packages are visited in declaration order, so a manifest that already lists
// dependencies first keeps its literal order.
func (p *Plan) Validate() error {
	p.executionOrder = make([]InternedString, 0, len(p.packages))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		pkg, exists := p.packages[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range pkg.Dependencies {
			if visited[dep] == 1 {
				return p.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		p.executionOrder = append(p.executionOrder, u)
		return nil
	}

	for _, name := range p.declared {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (p *Plan) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := slices.Index(path, dep)
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields packages in install order.
// It assumes Validate() has been called and returned nil.
func (p *Plan) Walk() iter.Seq[Package] {
	return func(yield func(Package) bool) {
		for _, name := range p.executionOrder {
			if !yield(p.packages[name]) {
				return
			}
		}
	}
}

// Get returns the package with the given name.
func (p *Plan) Get(name string) (Package, bool) {
	pkg, ok := p.packages[NewInternedString(name)]
	return pkg, ok
}

// Len returns the number of packages in the plan.
func (p *Plan) Len() int {
	return len(p.packages)
}

// Names returns the package names in install order.
func (p *Plan) Names() []string {
	names := make([]string, 0, len(p.executionOrder))
	for _, n := range p.executionOrder {
		names = append(names, n.String())
	}
	return names
}

// BuildPlan selects the manifest's default packages plus the requested
// add-ons and validates the result.
func BuildPlan(m *Manifest, addons []string) (*Plan, error) {
	requested := make(map[string]bool, len(addons))
	for _, a := range addons {
		requested[a] = true
	}

	p := NewPlan()
	for i := range m.Packages {
		pkg := &m.Packages[i]
		if pkg.Addon && !requested[pkg.Name.String()] {
			continue
		}
		delete(requested, pkg.Name.String())

		if _, ok := m.Repository(pkg.Repository); !ok {
			err := zerr.Wrap(ErrUnknownRepository, "invalid manifest")
			err = zerr.With(err, "repository", pkg.Repository.String())
			return nil, zerr.With(err, "package", pkg.Name.String())
		}
		if err := p.AddPackage(pkg); err != nil {
			return nil, err
		}
	}

	if len(requested) > 0 {
		unknown := make([]string, 0, len(requested))
		for name := range requested {
			unknown = append(unknown, name)
		}
		slices.Sort(unknown)
		return nil, zerr.With(zerr.Wrap(ErrUnknownAddon, "invalid add-on selection"), "addons", unknown)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Repositories returns the repositories the plan needs, in first-use order.
func (p *Plan) Repositories(m *Manifest) []Repository {
	seen := make(map[InternedString]bool)
	var repos []Repository
	for pkg := range p.Walk() {
		if seen[pkg.Repository] {
			continue
		}
		seen[pkg.Repository] = true
		if r, ok := m.Repository(pkg.Repository); ok {
			repos = append(repos, r)
		}
	}
	return repos
}
