package storage

import (
	"io"
	"time"
)

// Object is a stored file reference: the opaque storage path plus a URL the
// client can fetch it from for a limited time
type Object struct {
	Path string
	URL  string
}

// ObjectStore is the object-storage gateway. The engine keeps only the
// returned references on application records; storage mechanics stay here.
type ObjectStore interface {
	// Save stores the content under a generated object name derived from
	// the original filename's extension
	Save(name string, r io.Reader) (*Object, error)
	// SignedURL returns a fresh expiring URL for an already-stored object
	SignedURL(path string, ttl time.Duration) (string, error)
	// Remove deletes the stored object
	Remove(path string) error
}
