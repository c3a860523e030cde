package upstream

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soryntech/portfolio-api/internal/domain"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

const documentSchema = `
CREATE TABLE IF NOT EXISTS portfolio_document (
    id         SMALLINT PRIMARY KEY CHECK (id = 1),
    doc        JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps the content document as a single JSONB row. It is the
// relational alternative to the JSONBin backend, selected with
// STORE_BACKEND=postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore ensures the document table exists and returns the store.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, documentSchema); err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Load reads the current document. A store with no document yet yields an
// empty one.
func (s *PostgresStore) Load(ctx context.Context) (domain.Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM portfolio_document WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Document{}, nil
	}
	if err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}

	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return doc, nil
}

// Replace upserts the document row.
func (s *PostgresStore) Replace(ctx context.Context, doc domain.Document) (domain.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO portfolio_document (id, doc) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`, raw)
	if err != nil {
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	return doc, nil
}
