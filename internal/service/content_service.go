package service

import (
	"context"
	"encoding/json"

	"github.com/soryntech/portfolio-api/internal/domain"
	"github.com/soryntech/portfolio-api/internal/upstream"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// ContentService mediates reads and writes of the portfolio document,
// enforcing the field-scoped write for the commission role.
type ContentService struct {
	store upstream.Store
}

// NewContentService builds the service.
func NewContentService(store upstream.Store) *ContentService {
	return &ContentService{store: store}
}

// Read returns the current document. Every read is a fresh pass-through;
// the gateway caches nothing.
func (s *ContentService) Read(ctx context.Context) (domain.Document, error) {
	return s.store.Load(ctx)
}

// Write persists the submitted document for the session. Owners replace the
// whole document. Commission writers submit a full document too, but only
// the commissions field persists: the current record is loaded, commissions
// overwritten, everything else kept untouched.
func (s *ContentService) Write(ctx context.Context, session domain.Session, rawBody []byte) (domain.Document, error) {
	submitted, err := parseDocument(rawBody)
	if err != nil {
		return nil, err
	}

	switch {
	case session.Role.CanReplaceDocument():
		return s.store.Replace(ctx, submitted)
	case session.Role == domain.RoleCommission:
		return s.writeCommissions(ctx, submitted)
	default:
		return nil, apperrors.NewForbidden("Forbidden")
	}
}

func (s *ContentService) writeCommissions(ctx context.Context, submitted domain.Document) (domain.Document, error) {
	commissions, ok := submitted[domain.FieldCommissions]
	if !ok {
		return nil, apperrors.NewInvalidRequest("Missing commissions field")
	}

	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = domain.Document{}
	}
	current[domain.FieldCommissions] = commissions
	return s.store.Replace(ctx, current)
}

// parseDocument rejects anything but a JSON object before any upstream call.
func parseDocument(rawBody []byte) (domain.Document, error) {
	var parsed any
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return nil, apperrors.NewInvalidRequest("Invalid JSON")
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, apperrors.NewInvalidRequest("Invalid body")
	}
	return domain.Document(obj), nil
}
