package upstream

import (
	"context"

	"github.com/soryntech/portfolio-api/internal/domain"
)

// Store is the backing document store holding the portfolio content. Reads
// are always fresh pass-throughs; writes replace the whole document.
// Concurrent writes race last-write-wins at the store.
type Store interface {
	Load(ctx context.Context) (domain.Document, error)
	Replace(ctx context.Context, doc domain.Document) (domain.Document, error)
}
