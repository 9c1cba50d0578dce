package domain

// Probe is the result of a capability probe, such as locating an installed
// module or an executable. Call sites branch on Found instead of on errors.
type Probe struct {
	path  string
	found bool
}

// Found returns a probe result pointing at path.
func Found(path string) Probe {
	return Probe{path: path, found: true}
}

// NotFound returns a negative probe result.
func NotFound() Probe {
	return Probe{}
}

// Found reports whether the probe located its target.
func (p Probe) Found() bool {
	return p.found
}

// Path returns the located path, empty when not found.
func (p Probe) Path() string {
	return p.path
}
