package usecase

import (
	"context"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *memStore, *Metrics) {
	t.Helper()
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	store := newMemStore()
	a := NewAutosaver(store, domain.AutosaveKey, time.Second, WithClock(clockwork.NewFakeClock()), WithMetrics(m))
	return NewSession(a, m), store, m
}

func TestSession_UpdateSchedulesAutosave(t *testing.T) {
	s, store, _ := newTestSession(t)

	assert.False(t, s.autosave.Pending())
	require.NoError(t, s.Update(func(e *Editor) error { return e.SetField(model.FieldFirstName, "Jane") }))
	assert.True(t, s.autosave.Pending())

	s.autosave.Flush(context.Background())
	saved := waitSaved(t, store)
	restored, err := Deserialize(saved, domain.NewSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "Jane", restored.Document.FirstName)

	// same value again: nothing to persist
	require.NoError(t, s.Update(func(e *Editor) error { return e.SetField(model.FieldFirstName, "Jane") }))
	assert.False(t, s.autosave.Pending())

	err = s.Update(func(e *Editor) error { return e.SetField("nickname", "JD") })
	assert.ErrorIs(t, err, domain.ErrUnknownField)
	assert.False(t, s.autosave.Pending())
}

func TestSession_Steps(t *testing.T) {
	s, _, _ := newTestSession(t)

	st := s.Next()
	assert.Equal(t, StepPersonal, st.Step)
	assert.False(t, st.Advanced)
	assert.False(t, st.Decision.Valid)
	assert.Contains(t, st.Decision.Missing, model.FieldEmail)
	assert.False(t, st.Completion.Valid)

	require.NoError(t, s.Update(func(e *Editor) error {
		for f, v := range map[string]string{
			model.FieldFirstName: "Jane",
			model.FieldLastName:  "Doe",
			model.FieldTitle:     "Engineer",
			model.FieldEmail:     "jane@doe.com",
			model.FieldPhone:     "555-1234",
		} {
			if err := e.SetField(f, v); err != nil {
				return err
			}
		}
		return nil
	}))
	st = s.Next()
	assert.Equal(t, StepSummary, st.Step)
	assert.Equal(t, "summary", st.StepName)
	assert.True(t, st.Advanced)
	assert.True(t, st.Decision.Valid)
	assert.False(t, st.Completion.Valid, "summary step is not complete yet")

	back := s.Back()
	assert.Equal(t, StepPersonal, back.Step)

	_ = s.Next()
	reset := s.Reset()
	assert.Equal(t, StepPersonal, reset.Step)
	assert.Equal(t, model.NewDocument(), reset.Document)
	assert.Empty(t, reset.Errors)
}

func TestSession_Import(t *testing.T) {
	s, _, _ := newTestSession(t)
	require.NoError(t, s.Update(func(e *Editor) error { return e.SetField(model.FieldFirstName, "Jane") }))
	before := s.Snapshot()

	assert.False(t, s.Import([]byte(`{"document":`)))
	assert.Equal(t, before, s.Snapshot())

	assert.True(t, s.Import([]byte(`{"document":{"firstName":"Ann","email":"bad"}}`)))
	st := s.State()
	assert.Equal(t, "Ann", st.Document.FirstName)
	assert.NotEmpty(t, st.Errors[model.FieldEmail])
}

func TestSession_Restore(t *testing.T) {
	s, store, _ := newTestSession(t)
	assert.False(t, s.Restore(context.Background()))

	snap := domain.NewSnapshot()
	snap.Document.FirstName = "Jane"
	raw, err := Serialize(snap)
	require.NoError(t, err)
	store.data[domain.AutosaveKey] = raw

	assert.True(t, s.Restore(context.Background()))
	assert.Equal(t, "Jane", s.Snapshot().Document.FirstName)
	assert.False(t, s.autosave.Pending(), "restored state is not written back")

	store.data[domain.AutosaveKey] = []byte("garbage")
	fresh := NewSession(NewAutosaver(store, domain.AutosaveKey, time.Second), nil)
	assert.False(t, fresh.Restore(context.Background()))
	assert.Equal(t, domain.NewSnapshot(), fresh.Snapshot())
}

func TestSession_Keywords(t *testing.T) {
	s, _, m := newTestSession(t)
	require.NoError(t, s.Update(func(e *Editor) error { return e.SetField(model.FieldSummary, "Senior Python developer") }))

	assert.Equal(t, []string{"aws", "experience"}, s.MissingKeywords("Python developer with AWS experience"))
	assert.Equal(t, []string{}, s.MissingKeywords(""))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.keywordAnalyses))
}

func TestSession_Experience(t *testing.T) {
	s, _, _ := newTestSession(t)
	var id string
	require.NoError(t, s.Update(func(e *Editor) error {
		var err error
		id, err = e.AddEntry(model.SectionExperience)
		return err
	}))
	require.NoError(t, s.Update(func(e *Editor) error {
		_, err := e.ToggleSuggestions(id)
		return err
	}))

	exp, shown, err := s.Experience(id)
	require.NoError(t, err)
	assert.Equal(t, id, exp.ID)
	assert.True(t, shown)

	_, _, err = s.Experience("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSession_ResetClearsAutosave(t *testing.T) {
	s, store, _ := newTestSession(t)
	require.NoError(t, s.Update(func(e *Editor) error { return e.SetField(model.FieldFirstName, "Jane") }))
	s.autosave.Flush(context.Background())
	waitSaved(t, store)

	s.Reset()
	assert.False(t, s.autosave.Pending())
	_, ok := s.autosave.Restore(context.Background())
	assert.False(t, ok)

	// editing after a reset persists again
	require.NoError(t, s.Update(func(e *Editor) error { return e.SetField(model.FieldFirstName, "Ann") }))
	assert.True(t, s.autosave.Pending())
}
