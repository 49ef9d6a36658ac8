// Package docstore defines the persistence port the guidebook engine
// depends on: a generic document database with CRUD and query-by-field
// operations over named collections. Implementations live in the memory,
// postgres, and rediscache subpackages.
package docstore

import (
	"context"
	"errors"
)

// Collection names consumed by the engine.
const (
	CollectionCountries      = "countries"
	CollectionCountryDetails = "countryDetails"
	CollectionCityDetails    = "cityDetails"
	CollectionContentLibrary = "contentLibrary"
	CollectionGuidebooks     = "guidebooks"
	CollectionAttractions    = "attractions"
	CollectionRestaurants    = "restaurants"
	CollectionShopping       = "shopping"
	CollectionServices       = "services"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrUnsupportedOp indicates a where-clause operator the store cannot evaluate.
var ErrUnsupportedOp = errors.New("unsupported where operator")

// Document is the JSON-like shape every collection stores. Ids are assigned
// by the store; created_at/updated_at are server timestamps.
type Document map[string]any

// ID returns the document id, if present.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Where is a single field filter. Only equality is required by the engine;
// stores reject operators they cannot evaluate with ErrUnsupportedOp.
type Where struct {
	Field string
	Op    string
	Value any
}

// Eq builds an equality filter.
func Eq(field string, value any) Where {
	return Where{Field: field, Op: "==", Value: value}
}

// Store is the document database port. All engine components depend on this
// abstraction, never on a concrete database client.
type Store interface {
	// GetByID fetches one document. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, collection, id string) (Document, error)

	// Query returns all documents in the collection matching every clause.
	Query(ctx context.Context, collection string, where ...Where) ([]Document, error)

	// Create stores a new document and returns its assigned id.
	Create(ctx context.Context, collection string, doc Document) (string, error)

	// Update merges the given fields into an existing document.
	// Returns ErrNotFound when absent.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes a document. Returns ErrNotFound when absent.
	Delete(ctx context.Context, collection, id string) error
}
