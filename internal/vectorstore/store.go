// Package vectorstore defines the persistent similarity index used by
// the build and ask pipelines: named collections of vector records
// with bulk insert and k-nearest-neighbour query.
package vectorstore

import "mourag/internal/domain"

// BatchSize bounds how many records a single insert request carries.
// Earlier batches stay committed when a later batch fails.
const BatchSize = 100

// Store manages named persistent collections.
type Store interface {
	// Open returns the collection with the given name, creating an
	// empty one if it does not exist. The same name refers to the
	// same logical collection across process invocations.
	Open(name string) (Collection, error)
	// Delete removes a collection entirely. Deleting a collection
	// that does not exist is not an error.
	Delete(name string) error
}

// Collection is a named set of vector records.
type Collection interface {
	Name() string
	Count() (int, error)
	// BulkInsert appends records in batches of BatchSize.
	BulkInsert(records []domain.IndexRecord) error
	// Query returns up to k records ordered by ascending distance to
	// the query vector. A collection with fewer than k records
	// returns all of them; an empty collection returns an empty
	// result.
	Query(vector []float32, k int) ([]domain.SearchResult, error)
}
