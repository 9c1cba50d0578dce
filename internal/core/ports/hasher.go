package ports

// TreeHasher computes content digests of directory trees.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_hasher.go -package=mocks -source=hasher.go
type TreeHasher interface {
	// Digest hashes the relative paths and contents of every file under root.
	Digest(root string) (string, error)
}
