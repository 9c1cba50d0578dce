package domain

import "strings"

// Identity is the content-identity token of a source tree: its current
// version-control revision. The zero value is the unknown identity.
type Identity struct {
	rev string
}

// NewIdentity returns the identity for the given revision string.
// Surrounding whitespace is ignored; an empty revision yields the unknown identity.
func NewIdentity(rev string) Identity {
	return Identity{rev: strings.TrimSpace(rev)}
}

// UnknownIdentity returns the identity of a tree whose revision could not be read.
func UnknownIdentity() Identity {
	return Identity{}
}

// Known reports whether the identity carries a revision.
func (i Identity) Known() bool {
	return i.rev != ""
}

// String returns the revision, or "unknown".
func (i Identity) String() string {
	if !i.Known() {
		return "unknown"
	}
	return i.rev
}

// Rev returns the raw revision string, empty when unknown.
func (i Identity) Rev() string {
	return i.rev
}

// Matches reports whether both identities are known and equal.
// An unknown identity never matches, not even another unknown one.
func (i Identity) Matches(other Identity) bool {
	return i.Known() && other.Known() && i.rev == other.rev
}

// CacheDecision is the outcome of validating a cache entry against a source tree.
type CacheDecision uint8

const (
	// CacheMiss means the entry is absent, stale or unreadable.
	CacheMiss CacheDecision = iota
	// CacheHit means the stored token equals the live source identity.
	CacheHit
)

// String returns "hit" or "miss".
func (d CacheDecision) String() string {
	if d == CacheHit {
		return "hit"
	}
	return "miss"
}

// Decide compares a live source identity with a stored one.
func Decide(live, stored Identity) CacheDecision {
	if live.Matches(stored) {
		return CacheHit
	}
	return CacheMiss
}
