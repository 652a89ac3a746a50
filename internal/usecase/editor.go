package usecase

import (
	"fmt"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// Editor owns the document, the section order and visibility, and the
// validation error map. Scalar setters never refuse a value; validation is
// advisory and lands in Errors. List fields change only through the entry
// list engine in package model.
type Editor struct {
	doc        model.Document
	order      []model.SectionID
	visibility map[model.SectionID]bool
	errors     map[string]string
	// experience entry id -> "show suggestions"
	suggestions map[string]bool
}

func NewEditor() *Editor {
	e := &Editor{}
	e.Reset()
	return e
}

// Reset restores every piece of state to the defaults of a new session.
func (e *Editor) Reset() {
	e.doc = model.NewDocument()
	e.order = model.DefaultSectionOrder()
	e.visibility = model.DefaultSectionVisibility()
	e.errors = map[string]string{}
	e.suggestions = map[string]bool{}
}

// Document returns a copy of the current document.
func (e *Editor) Document() model.Document { return e.doc.Clone() }

// Errors returns a copy of the validation error map.
func (e *Editor) Errors() map[string]string {
	out := make(map[string]string, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// Snapshot captures the persistable state.
func (e *Editor) Snapshot() domain.Snapshot {
	s := domain.Snapshot{
		Document:          e.doc,
		SectionOrder:      e.order,
		SectionVisibility: e.visibility,
	}
	return s.Clone()
}

// Load replaces the persistable state with s and revalidates every
// non-empty scalar field. Suggestion toggles of entries that no longer
// exist are dropped.
func (e *Editor) Load(s domain.Snapshot) {
	s = s.Clone()
	e.doc = s.Document
	e.order = s.SectionOrder
	e.visibility = s.SectionVisibility
	e.errors = map[string]string{}
	for _, f := range model.ScalarFields {
		if v, _ := e.doc.Field(f); v != "" {
			e.errors[f] = model.ValidateField(f, v)
		}
	}
	for id := range e.suggestions {
		if model.IndexOf(e.doc.Experience, id) < 0 {
			delete(e.suggestions, id)
		}
	}
}

// SetField stores value in a scalar field and records its validation
// message. The write happens whether or not the value is valid.
func (e *Editor) SetField(field, value string) error {
	if !e.doc.SetField(field, value) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	e.errors[field] = model.ValidateField(field, value)
	return nil
}

// SetTemplate switches the layout; unknown identifiers are ignored.
func (e *Editor) SetTemplate(t model.Template) bool {
	if !t.Valid() {
		return false
	}
	e.doc.Template = t
	return true
}

func (e *Editor) SetFont(font string) { e.doc.Font = font }

func (e *Editor) SetAccentColor(color string) { e.doc.AccentColor = color }

// AddEntry appends a default record to a structured list and returns its id.
func (e *Editor) AddEntry(list model.SectionID) (string, error) {
	switch list {
	case model.SectionEducation:
		v := model.NewEducation()
		e.doc.Education = model.Add(e.doc.Education, v)
		return v.ID, nil
	case model.SectionExperience:
		v := model.NewExperience()
		e.doc.Experience = model.Add(e.doc.Experience, v)
		return v.ID, nil
	case model.SectionProjects:
		v := model.NewProject()
		e.doc.Projects = model.Add(e.doc.Projects, v)
		return v.ID, nil
	case model.SectionCertifications:
		v := model.NewCertification()
		e.doc.Certifications = model.Add(e.doc.Certifications, v)
		return v.ID, nil
	case model.SectionLanguages:
		v := model.NewLanguage()
		e.doc.Languages = model.Add(e.doc.Languages, v)
		return v.ID, nil
	}
	return "", unknownList(list)
}

// UpdateEntry sets field key of the entry with the given id.
func (e *Editor) UpdateEntry(list model.SectionID, id, key, value string) error {
	switch list {
	case model.SectionEducation:
		return updateByID(&e.doc.Education, id, key, value)
	case model.SectionExperience:
		return updateByID(&e.doc.Experience, id, key, value)
	case model.SectionProjects:
		return updateByID(&e.doc.Projects, id, key, value)
	case model.SectionCertifications:
		return updateByID(&e.doc.Certifications, id, key, value)
	case model.SectionLanguages:
		return updateByID(&e.doc.Languages, id, key, value)
	}
	return unknownList(list)
}

// RemoveEntry deletes the entry with the given id together with any state
// keyed by it.
func (e *Editor) RemoveEntry(list model.SectionID, id string) error {
	var err error
	switch list {
	case model.SectionEducation:
		err = removeByID(&e.doc.Education, id)
	case model.SectionExperience:
		if err = removeByID(&e.doc.Experience, id); err == nil {
			delete(e.suggestions, id)
		}
	case model.SectionProjects:
		err = removeByID(&e.doc.Projects, id)
	case model.SectionCertifications:
		err = removeByID(&e.doc.Certifications, id)
	case model.SectionLanguages:
		err = removeByID(&e.doc.Languages, id)
	default:
		err = unknownList(list)
	}
	return err
}

// MoveEntry swaps the entry with its neighbour; moves past either end are
// silently ignored.
func (e *Editor) MoveEntry(list model.SectionID, id string, direction int) error {
	switch list {
	case model.SectionEducation:
		return moveByID(&e.doc.Education, id, direction)
	case model.SectionExperience:
		return moveByID(&e.doc.Experience, id, direction)
	case model.SectionProjects:
		return moveByID(&e.doc.Projects, id, direction)
	case model.SectionCertifications:
		return moveByID(&e.doc.Certifications, id, direction)
	case model.SectionLanguages:
		return moveByID(&e.doc.Languages, id, direction)
	}
	return unknownList(list)
}

// AddTag adds a skill or hobby. It reports whether the list changed.
func (e *Editor) AddTag(list model.SectionID, value string) (bool, error) {
	l, err := e.tagList(list)
	if err != nil {
		return false, err
	}
	before := len(*l)
	*l = model.AddUnique(*l, value)
	return len(*l) != before, nil
}

func (e *Editor) RemoveTag(list model.SectionID, index int) error {
	l, err := e.tagList(list)
	if err != nil {
		return err
	}
	*l = model.Remove(*l, index)
	return nil
}

func (e *Editor) MoveTag(list model.SectionID, index, direction int) error {
	l, err := e.tagList(list)
	if err != nil {
		return err
	}
	*l = model.Move(*l, index, direction)
	return nil
}

func (e *Editor) tagList(list model.SectionID) (*[]string, error) {
	switch list {
	case model.SectionSkills:
		return &e.doc.Skills, nil
	case model.SectionHobbies:
		return &e.doc.Hobbies, nil
	}
	return nil, unknownList(list)
}

// SectionOrder returns a copy of the current order.
func (e *Editor) SectionOrder() []model.SectionID {
	return append([]model.SectionID{}, e.order...)
}

// SectionVisibility returns a copy of the visibility map.
func (e *Editor) SectionVisibility() map[model.SectionID]bool {
	return e.Snapshot().SectionVisibility
}

// SetSectionOrder replaces the order; anything but a permutation of the
// seven list sections is refused.
func (e *Editor) SetSectionOrder(order []model.SectionID) error {
	if !model.IsPermutation(order) {
		return fmt.Errorf("%w: order must list every section exactly once", domain.ErrInvalidSection)
	}
	e.order = append([]model.SectionID{}, order...)
	return nil
}

// MoveSection shifts a section one slot up (-1) or down (+1).
func (e *Editor) MoveSection(id model.SectionID, direction int) error {
	for i, s := range e.order {
		if s == id {
			e.order = model.Move(e.order, i, direction)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidSection, id)
}

func (e *Editor) SetSectionVisible(id model.SectionID, visible bool) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSection, id)
	}
	e.visibility[id] = visible
	return nil
}

// ToggleSection flips the visibility of a section and returns the new value.
func (e *Editor) ToggleSection(id model.SectionID) (bool, error) {
	visible := !e.sectionVisible(id)
	if err := e.SetSectionVisible(id, visible); err != nil {
		return false, err
	}
	return visible, nil
}

func (e *Editor) sectionVisible(id model.SectionID) bool {
	v, ok := e.visibility[id]
	return !ok || v
}

// ToggleSuggestions flips the "show suggestions" flag of an experience entry.
func (e *Editor) ToggleSuggestions(id string) (bool, error) {
	if model.IndexOf(e.doc.Experience, id) < 0 {
		return false, fmt.Errorf("experience %s: %w", id, domain.ErrNotFound)
	}
	e.suggestions[id] = !e.suggestions[id]
	return e.suggestions[id], nil
}

// SuggestionsShown reports the flag for an experience entry.
func (e *Editor) SuggestionsShown(id string) bool { return e.suggestions[id] }

// Experience looks up an experience entry by id.
func (e *Editor) Experience(id string) (model.Experience, error) {
	i := model.IndexOf(e.doc.Experience, id)
	if i < 0 {
		return model.Experience{}, fmt.Errorf("experience %s: %w", id, domain.ErrNotFound)
	}
	return e.doc.Experience[i], nil
}

// ApplySuggestion appends text as a new line of the entry's description.
func (e *Editor) ApplySuggestion(id, text string) error {
	exp, err := e.Experience(id)
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	desc := exp.Description
	if strings.TrimSpace(desc) != "" {
		desc = strings.TrimRight(desc, "\n") + "\n"
	}
	return e.UpdateEntry(model.SectionExperience, id, "description", desc+text)
}

func updateByID[T model.Entry[T]](l *[]T, id, key, value string) error {
	i := model.IndexOf(*l, id)
	if i < 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	*l = model.Update(*l, i, key, value)
	return nil
}

func removeByID[T model.Entry[T]](l *[]T, id string) error {
	i := model.IndexOf(*l, id)
	if i < 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	*l = model.Remove(*l, i)
	return nil
}

func moveByID[T model.Entry[T]](l *[]T, id string, direction int) error {
	i := model.IndexOf(*l, id)
	if i < 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	*l = model.Move(*l, i, direction)
	return nil
}

func unknownList(list model.SectionID) error {
	return fmt.Errorf("%w: %s", domain.ErrUnknownList, list)
}
