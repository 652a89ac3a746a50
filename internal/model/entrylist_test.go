package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEducation() []Education {
	return []Education{
		{ID: "a", Institution: "MIT", Degree: "BSc", Year: "2015"},
		{ID: "b", Institution: "ETH", Degree: "MSc", Year: "2017"},
		{ID: "c", Institution: "TUM", Degree: "PhD", Year: "2021"},
	}
}

func TestMove(t *testing.T) {
	t.Run("boundaries are no-ops", func(t *testing.T) {
		l := sampleEducation()
		assert.Equal(t, l, Move(l, 0, -1))
		assert.Equal(t, l, Move(l, len(l)-1, 1))
		assert.Equal(t, l, Move(l, 5, 1))
		assert.Equal(t, l, Move(l, 1, 2))
	})

	t.Run("swaps neighbours", func(t *testing.T) {
		l := sampleEducation()
		down := Move(l, 0, 1)
		assert.Equal(t, []string{"b", "a", "c"}, ids(down))
		up := Move(l, 2, -1)
		assert.Equal(t, []string{"a", "c", "b"}, ids(up))
	})

	t.Run("input is not modified", func(t *testing.T) {
		l := sampleEducation()
		_ = Move(l, 0, 1)
		assert.Equal(t, sampleEducation(), l)
	})

	t.Run("empty list", func(t *testing.T) {
		l := []string{}
		assert.Equal(t, l, Move(l, 0, 1))
	})
}

func TestAddRemove(t *testing.T) {
	l := sampleEducation()
	added := Add(l, NewEducation())
	require.Len(t, added, 4)
	assert.Len(t, l, 3)
	assert.NotEmpty(t, added[3].ID)

	assert.Equal(t, l, Remove(added, len(l)))

	empty := []Education{}
	assert.Equal(t, empty, Remove(Add(empty, NewEducation()), 0))
}

func TestRemove(t *testing.T) {
	l := sampleEducation()
	assert.Equal(t, []string{"a", "c"}, ids(Remove(l, 1)))
	assert.Equal(t, []string{"a", "b", "c"}, ids(l))
	assert.Equal(t, l, Remove(l, -1))
	assert.Equal(t, l, Remove(l, 3))
}

func TestUpdate(t *testing.T) {
	l := sampleEducation()

	updated := Update(l, 1, "degree", "MBA")
	assert.Equal(t, "MBA", updated[1].Degree)
	assert.Equal(t, "MSc", l[1].Degree)

	assert.Equal(t, l, Update(l, 3, "degree", "MBA"))
	assert.Equal(t, l, Update(l, -1, "degree", "MBA"))
	assert.Equal(t, l, Update(l, 0, "nope", "x"))
	assert.Equal(t, l, Update(l, 0, "id", "hijack"))
}

func TestAddUnique(t *testing.T) {
	tests := []struct {
		name  string
		in    []string
		value string
		want  []string
	}{
		{"appends trimmed", []string{"Go"}, "  Rust ", []string{"Go", "Rust"}},
		{"rejects blank", []string{"Go"}, "   ", []string{"Go"}},
		{"rejects case-insensitive duplicate", []string{"Go"}, "GO", []string{"Go"}},
		{"rejects duplicate after trim", []string{"Go"}, " go ", []string{"Go"}},
		{"empty list", []string{}, "Docker", []string{"Docker"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddUnique(tt.in, tt.value))
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		l := AddUnique([]string{}, "Python")
		l = AddUnique(l, "python")
		l = AddUnique(l, "PYTHON")
		assert.Equal(t, []string{"Python"}, l)
	})
}

func TestIndexOf(t *testing.T) {
	l := sampleEducation()
	assert.Equal(t, 2, IndexOf(l, "c"))
	assert.Equal(t, -1, IndexOf(l, "zzz"))
}

func ids(l []Education) []string {
	out := make([]string, 0, len(l))
	for _, e := range l {
		out = append(out, e.ID)
	}
	return out
}
