package domain

// CacheEntry names a cacheable dependency: its cache key, the Python module
// that locates its installed artifact, and its source tree.
type CacheEntry struct {
	Name   string
	Module string
	Source string
}

// CacheReport describes the state of one cache entry against its source tree.
type CacheReport struct {
	Name     string
	Stored   Identity
	Live     Identity
	Decision CacheDecision
	Digest   string
}

// CacheEntryFor returns the cache entry of a package whose source lives under layout.
func CacheEntryFor(l Layout, pkg Package) CacheEntry {
	return CacheEntry{
		Name:   pkg.Name.String(),
		Module: pkg.Module,
		Source: l.SourceDir(pkg.Repository.String()),
	}
}
