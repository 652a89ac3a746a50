package domain

import (
	"time"

	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// AutosaveKey is the well-known storage key for the latest autosaved state.
const AutosaveKey = "resume-builder.autosave"

// Snapshot is the portable form of an authoring session: the document plus
// section composition choices. It is what autosave writes and export emits.
type Snapshot struct {
	Document          model.Document           `json:"document"`
	SectionOrder      []model.SectionID        `json:"sectionOrder"`
	SectionVisibility map[model.SectionID]bool `json:"sectionVisibility"`
}

// NewSnapshot returns the state of a fresh session.
func NewSnapshot() Snapshot {
	return Snapshot{
		Document:          model.NewDocument(),
		SectionOrder:      model.DefaultSectionOrder(),
		SectionVisibility: model.DefaultSectionVisibility(),
	}
}

// Clone deep-copies s.
func (s Snapshot) Clone() Snapshot {
	vis := make(map[model.SectionID]bool, len(s.SectionVisibility))
	for k, v := range s.SectionVisibility {
		vis[k] = v
	}
	return Snapshot{
		Document:          s.Document.Clone(),
		SectionOrder:      append([]model.SectionID{}, s.SectionOrder...),
		SectionVisibility: vis,
	}
}

// SavedSnapshot is a stored serialized snapshot.
type SavedSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
