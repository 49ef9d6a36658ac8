package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripcraft/guidebook/pkg/guidebook/docstore"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements docstore.Store using PostgreSQL. Every collection shares
// one documents table keyed by (collection, id) with the document body in a
// jsonb column, so query-by-field maps onto jsonb containment.
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL document store.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL document store with a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// Schema is the DDL the store expects. Applied by migrations, kept here so
// the table shape lives next to the queries that use it.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    collection TEXT        NOT NULL,
    id         TEXT        NOT NULL,
    doc        JSONB       NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_doc_idx ON documents USING gin (doc);
`

func (s *Store) GetByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	query := `
        SELECT doc, created_at, updated_at
        FROM documents WHERE collection = $1 AND id = $2`

	var raw []byte
	var createdAt, updatedAt time.Time
	err := s.db.QueryRow(ctx, query, collection, id).Scan(&raw, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return decodeDocument(raw, id, createdAt, updatedAt)
}

func (s *Store) Query(ctx context.Context, collection string, where ...docstore.Where) ([]docstore.Document, error) {
	filter := docstore.Document{}
	for _, w := range where {
		if w.Op != "" && w.Op != "==" {
			return nil, docstore.ErrUnsupportedOp
		}
		filter[w.Field] = w.Value
	}
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode query filter: %w", err)
	}

	query := `
        SELECT id, doc, created_at, updated_at
        FROM documents
        WHERE collection = $1 AND doc @> $2::jsonb
        ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, collection, filterJSON)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var result []docstore.Document
	for rows.Next() {
		var id string
		var raw []byte
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decodeDocument(raw, id, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func (s *Store) Create(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	id := doc.ID()
	if id == "" {
		id = uuid.NewString()
	}
	body, err := encodeDocument(doc, id)
	if err != nil {
		return "", err
	}

	query := `
        INSERT INTO documents (collection, id, doc, created_at, updated_at)
        VALUES ($1, $2, $3, now(), now())`

	if _, err := s.db.Exec(ctx, query, collection, id, body); err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	body, err := encodeDocument(fields, id)
	if err != nil {
		return err
	}

	// jsonb || merges top-level fields, matching the partial-update contract.
	query := `
        UPDATE documents
        SET doc = doc || $3::jsonb, updated_at = now()
        WHERE collection = $1 AND id = $2`

	tag, err := s.db.Exec(ctx, query, collection, id, body)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`

	tag, err := s.db.Exec(ctx, query, collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

func encodeDocument(doc docstore.Document, id string) ([]byte, error) {
	body := docstore.Document{}
	for k, v := range doc {
		if k == "created_at" || k == "updated_at" {
			continue
		}
		body[k] = v
	}
	body["id"] = id
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

func decodeDocument(raw []byte, id string, createdAt, updatedAt time.Time) (docstore.Document, error) {
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc["id"] = id
	doc["created_at"] = createdAt.UTC().Format(time.RFC3339Nano)
	doc["updated_at"] = updatedAt.UTC().Format(time.RFC3339Nano)
	return doc, nil
}
