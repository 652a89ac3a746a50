package usecase

import "context"

// Renderer turns résumé HTML into a paginated PDF.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// SnapshotStore is durable storage for serialized snapshots. Load returns
// an error wrapping domain.ErrNotFound when nothing is stored under key;
// deleting a missing key is not an error.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// Suggester proposes description lines for an experience entry.
type Suggester interface {
	SuggestBullets(ctx context.Context, role, company string) ([]string, error)
}
