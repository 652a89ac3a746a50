package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/google/uuid"
)

// Serialize encodes a snapshot in the portable JSON shape
// {document, sectionOrder, sectionVisibility}.
func Serialize(s domain.Snapshot) ([]byte, error) {
	return json.Marshal(s.Clone())
}

// snapshotPatch records which top-level keys a payload carries.
type snapshotPatch struct {
	Document          json.RawMessage `json:"document"`
	SectionOrder      json.RawMessage `json:"sectionOrder"`
	SectionVisibility json.RawMessage `json:"sectionVisibility"`
}

// Deserialize merges raw into current: each of the three top-level keys
// present in raw replaces the matching part of current, absent keys are
// kept. Payloads that are not JSON or do not match the snapshot schema
// yield an error wrapping domain.ErrInvalidSnapshot; current is never
// modified.
func Deserialize(raw []byte, current domain.Snapshot) (domain.Snapshot, error) {
	if err := model.ValidateSnapshot(raw); err != nil {
		return current, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	var patch snapshotPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return current, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}

	out := current.Clone()
	if len(patch.Document) > 0 {
		doc := model.NewDocument()
		if err := json.Unmarshal(patch.Document, &doc); err != nil {
			return current, fmt.Errorf("%w: document: %v", domain.ErrInvalidSnapshot, err)
		}
		out.Document = normalizeDocument(doc)
	}
	if len(patch.SectionOrder) > 0 {
		var order []model.SectionID
		if err := json.Unmarshal(patch.SectionOrder, &order); err != nil || !model.IsPermutation(order) {
			return current, fmt.Errorf("%w: sectionOrder", domain.ErrInvalidSnapshot)
		}
		out.SectionOrder = order
	}
	if len(patch.SectionVisibility) > 0 {
		var vis map[model.SectionID]bool
		if err := json.Unmarshal(patch.SectionVisibility, &vis); err != nil {
			return current, fmt.Errorf("%w: sectionVisibility: %v", domain.ErrInvalidSnapshot, err)
		}
		full := model.DefaultSectionVisibility()
		for id, v := range vis {
			if id.Valid() {
				full[id] = v
			}
		}
		out.SectionVisibility = full
	}
	return out, nil
}

// normalizeDocument restores invariants a hand-edited file may break:
// every entry has an id, lists are non-nil, and tag lists hold no
// case-insensitive duplicates or blanks.
func normalizeDocument(d model.Document) model.Document {
	if !d.Template.Valid() {
		d.Template = model.TemplateClassic
	}
	d.Education = withIDs(d.Education, func(e *model.Education) *string { return &e.ID })
	d.Experience = withIDs(d.Experience, func(e *model.Experience) *string { return &e.ID })
	d.Projects = withIDs(d.Projects, func(e *model.Project) *string { return &e.ID })
	d.Certifications = withIDs(d.Certifications, func(e *model.Certification) *string { return &e.ID })
	d.Languages = withIDs(d.Languages, func(e *model.Language) *string { return &e.ID })
	d.Skills = dedupeTags(d.Skills)
	d.Hobbies = dedupeTags(d.Hobbies)
	return d
}

func withIDs[T any](l []T, id func(*T) *string) []T {
	out := make([]T, len(l))
	copy(out, l)
	seen := map[string]bool{}
	for i := range out {
		p := id(&out[i])
		if strings.TrimSpace(*p) == "" || seen[*p] {
			*p = uuid.NewString()
		}
		seen[*p] = true
	}
	return out
}

func dedupeTags(l []string) []string {
	out := []string{}
	for _, s := range l {
		out = model.AddUnique(out, s)
	}
	return out
}
