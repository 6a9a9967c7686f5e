package ports

// Hasher computes content digests of generated files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest returns the digest of data.
	Digest(data []byte) string
	// FileDigest returns the digest of the file at path.
	FileDigest(path string) (string, error)
}
