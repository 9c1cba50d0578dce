package ports

// FileSystem copies and removes directory trees.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_filesystem.go -package=mocks -source=filesystem.go
type FileSystem interface {
	// CopyTree recursively copies src to dst, preserving modes and symlinks.
	CopyTree(src, dst string) error

	// RemoveTree removes path and its contents. A missing path is not an error.
	RemoveTree(path string) error
}
