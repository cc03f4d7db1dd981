package storage

import (
	"github.com/hashicorp/go-hclog"
)

// Storage is an interface for a generic blobstore holding persisted
// snapshots.  Get returns nil without error for a missing key.
type Storage interface {
	Get([]byte) ([]byte, error)
	Put([]byte, []byte) error
	Del([]byte) error

	Close() error
}

// A Factory creates a store instance.
type Factory func(hclog.Logger) (Storage, error)
