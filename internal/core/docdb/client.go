// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
// The document database is the authoritative store; the cache only mirrors it.
type Client interface {
	// Database returns the database interface.
	Database() Database

	// Students returns the students collection.
	Students() StudentsCollection

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// EnsureIndexes creates the indexes every collection relies on.
	EnsureIndexes(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
