package port

import "context"

// BlobStore is the opaque object store. Addressing is by plain URL: Fetch
// resolves any addressable blob, Store publishes bytes and returns the
// public URL they are reachable at.
type BlobStore interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}
