package domain

// Document is the portfolio content record. The gateway treats its fields as
// opaque JSON, interpreting only the top-level keys listed below.
type Document map[string]any

// Top-level fields of the content document.
const (
	FieldProfile     = "profile"
	FieldBots        = "bots"
	FieldGallery     = "gallery"
	FieldCommissions = "commissions"
	FieldProjects    = "projects"
)
