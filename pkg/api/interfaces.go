package api

import (
	"context"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/lgeparse/pkg/archive"
)

// LeagueArchive defines the archive operations the server depends on
type LeagueArchive interface {
	// Put archives an entry, returning the existing one for a known digest
	Put(ctx context.Context, e archive.Entry) (archive.Entry, bool, error)

	// Get returns the entry stored under id
	Get(ctx context.Context, id ksuid.KSUID) (archive.Entry, error)

	// List returns up to limit entries without their league documents
	List(ctx context.Context, limit int) ([]archive.Entry, error)

	// Delete removes the entry stored under id
	Delete(ctx context.Context, id ksuid.KSUID) error
}

// ServerFactory creates API servers
type ServerFactory interface {
	// CreateServer wires a server around archive
	CreateServer(config ServerConfig, archive LeagueArchive) *Server
}
