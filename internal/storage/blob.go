package storage

import "io"

// BlobStore persists uploaded note files that feed quiz generation.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
