package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// Session is one authoring session. Every operation runs to completion
// under a single lock, so no two logical operations ever interleave.
// Changes to the persistable state are handed to the autosaver.
type Session struct {
	mu       sync.Mutex
	editor   *Editor
	gate     StepGate
	autosave *Autosaver
	metrics  *Metrics
	// last serialized state handed to autosave
	last []byte
}

// NewSession starts an empty session. autosave and metrics may be nil.
func NewSession(autosave *Autosaver, metrics *Metrics) *Session {
	s := &Session{editor: NewEditor(), autosave: autosave, metrics: metrics}
	s.last, _ = Serialize(s.editor.Snapshot())
	return s
}

// State is the read model of a session.
type State struct {
	domain.Snapshot
	Step       Step                   `json:"step"`
	StepName   string                 `json:"stepName"`
	Errors     map[string]string      `json:"errors"`
	Completion *StageValidationResult `json:"completion"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	step := s.gate.Current()
	doc := s.editor.Document()
	errs := s.editor.Errors()
	return State{
		Snapshot:   s.editor.Snapshot(),
		Step:       step,
		StepName:   step.String(),
		Errors:     errs,
		Completion: StageValidator(step, doc, errs),
	}
}

// Update applies fn to the editor. When fn succeeds and the persistable
// state changed, an autosave is scheduled.
func (s *Session) Update(fn func(*Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.editor); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

// View runs fn with read access to the editor.
func (s *Session) View(fn func(*Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor)
}

// StepResult is the outcome of a next request: the resulting state, whether
// the gate moved, and the completeness result of the step it was asked to
// leave.
type StepResult struct {
	State
	Advanced bool                   `json:"advanced"`
	Decision *StageValidationResult `json:"decision"`
}

// Next tries to advance the step gate.
func (s *Session) Next() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.gate.Current()
	decision := s.gate.Next(s.editor.Document(), s.editor.Errors())
	return StepResult{
		State:    s.stateLocked(),
		Advanced: s.gate.Current() != from,
		Decision: decision,
	}
}

func (s *Session) Back() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate.Back()
	return s.stateLocked()
}

// Reset discards the document, section order and visibility, validation
// errors and step position, and clears the autosaved snapshot.
func (s *Session) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.Reset()
	s.gate.Reset()
	s.last, _ = Serialize(s.editor.Snapshot())
	if s.autosave != nil {
		s.autosave.Discard(context.Background())
	}
	return s.stateLocked()
}

// Import merges a serialized snapshot into the session. Payloads that do
// not parse or do not match the snapshot shape are dropped without touching
// the session; the return value only tells whether anything was applied.
func (s *Session) Import(raw []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := Deserialize(raw, s.editor.Snapshot())
	if err != nil {
		slog.Warn("import discarded", "error", err)
		return false
	}
	s.editor.Load(merged)
	s.persistLocked()
	return true
}

// Export serializes the current persistable state.
func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Serialize(s.editor.Snapshot())
}

// Snapshot returns a copy of the persistable state.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Snapshot()
}

// Restore loads the autosaved snapshot, if any, at session start.
func (s *Session) Restore(ctx context.Context) bool {
	if s.autosave == nil {
		return false
	}
	data, ok := s.autosave.Restore(ctx)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := Deserialize(data, s.editor.Snapshot())
	if err != nil {
		slog.Warn("autosaved snapshot ignored", "error", err)
		return false
	}
	s.editor.Load(merged)
	s.last, _ = Serialize(s.editor.Snapshot())
	return true
}

// Sections composes the renderable sections of the current document.
func (s *Session) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Compose(s.editor.doc, s.editor.order, s.editor.visibility)
}

// MissingKeywords analyses jobDescription against the current document.
func (s *Session) MissingKeywords(jobDescription string) []string {
	s.mu.Lock()
	doc := s.editor.Document()
	s.mu.Unlock()
	if jobDescription != "" {
		s.metrics.keywordAnalysis()
	}
	return AnalyzeKeywords(doc, jobDescription)
}

// Experience returns an experience entry and its suggestion flag.
func (s *Session) Experience(id string) (model.Experience, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, err := s.editor.Experience(id)
	if err != nil {
		return model.Experience{}, false, err
	}
	return exp, s.editor.SuggestionsShown(id), nil
}

func (s *Session) persistLocked() {
	data, err := Serialize(s.editor.Snapshot())
	if err != nil {
		slog.Error("serialize snapshot", "error", err)
		return
	}
	if bytes.Equal(data, s.last) {
		return
	}
	s.last = data
	if s.autosave != nil {
		s.autosave.Schedule(data)
	}
}
