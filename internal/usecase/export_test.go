package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls int
	out   []byte
	err   error
	html  string
}

func (r *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	r.calls++
	r.html = html
	return r.out, r.err
}

type fakeSuggester struct {
	role, company string
	out           []string
	err           error
}

func (s *fakeSuggester) SuggestBullets(_ context.Context, role, company string) ([]string, error) {
	s.role, s.company = role, company
	return s.out, s.err
}

func exportSnapshot() domain.Snapshot {
	s := domain.NewSnapshot()
	s.Document.FirstName = "Jane"
	s.Document.LastName = "Doe"
	s.Document.Title = "Backend Engineer"
	s.Document.Email = "jane@doe.com"
	s.Document.Website = "https://www.janedoe.co.uk/about"
	s.Document.Summary = "Builds reliable <services>."
	s.Document.Template = model.TemplateModern
	s.Document.Experience = []model.Experience{{ID: "e1", Role: "Engineer", Company: "Acme", Description: "Built billing\n- Ran on-call"}}
	s.Document.Skills = []string{"Go", "PostgreSQL"}
	s.Document.Hobbies = []string{"Chess"}
	s.SectionVisibility[model.SectionHobbies] = false
	return s
}

func TestRenderHTML(t *testing.T) {
	p := NewProcessor(nil, nil)
	html, err := p.RenderHTML(exportSnapshot())
	require.NoError(t, err)

	assert.Contains(t, html, `<body class="modern"`)
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "janedoe.co.uk")
	assert.Contains(t, html, "Builds reliable &lt;services&gt;.")
	assert.Contains(t, html, "<li>Built billing</li>")
	assert.Contains(t, html, "<li>Ran on-call</li>")
	assert.Contains(t, html, "PostgreSQL")
	assert.Contains(t, html, model.DefaultAccentColor)
	assert.NotContains(t, html, "Chess", "hidden sections are not rendered")
	assert.NotContains(t, html, `id="education"`, "empty sections are not rendered")
}

func TestRenderMarkdown(t *testing.T) {
	p := NewProcessor(nil, nil)
	md, err := p.RenderMarkdown(exportSnapshot())
	require.NoError(t, err)
	assert.Contains(t, md, "# Jane Doe")
	assert.Contains(t, md, "## Experience")
	assert.Contains(t, md, "PostgreSQL")
}

func TestExportPDF(t *testing.T) {
	r := &fakeRenderer{out: []byte("%PDF-1.7 ...")}
	p := NewProcessor(r, nil)
	pdf, err := p.ExportPDF(context.Background(), exportSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 ...", string(pdf))
	assert.Equal(t, 1, r.calls)
	assert.Contains(t, r.html, "Jane Doe")
}

func TestExportPDF_Failure(t *testing.T) {
	r := &fakeRenderer{err: errors.New("chrome not found")}
	p := NewProcessor(r, nil)
	p.backoff = time.Millisecond

	snap := exportSnapshot()
	before := snap.Clone()
	_, err := p.ExportPDF(context.Background(), snap)
	require.Error(t, err)
	assert.Equal(t, 3, r.calls)
	assert.Equal(t, before, snap)

	r = &fakeRenderer{out: []byte("<html>")}
	p = NewProcessor(r, nil)
	p.backoff = time.Millisecond
	_, err = p.ExportPDF(context.Background(), snap)
	assert.ErrorContains(t, err, "invalid PDF output")

	_, err = NewProcessor(nil, nil).ExportPDF(context.Background(), snap)
	assert.Error(t, err)
}

func TestSuggestions(t *testing.T) {
	exp := model.Experience{ID: "e1", Role: "Engineer", Company: "Acme"}

	out, err := NewProcessor(nil, nil).Suggestions(context.Background(), exp)
	require.NoError(t, err)
	assert.Empty(t, out)

	s := &fakeSuggester{out: []string{"Led migration", " led migration ", "", "Mentored juniors"}}
	out, err = NewProcessor(nil, s).Suggestions(context.Background(), exp)
	require.NoError(t, err)
	assert.Equal(t, []string{"Led migration", "Mentored juniors"}, out)
	assert.Equal(t, "Engineer", s.role)
	assert.Equal(t, "Acme", s.company)

	out, err = NewProcessor(nil, s).Suggestions(context.Background(), model.Experience{ID: "blank"})
	require.NoError(t, err)
	assert.Empty(t, out)

	s.err = errors.New("upstream down")
	_, err = NewProcessor(nil, s).Suggestions(context.Background(), exp)
	assert.Error(t, err)
}

func TestLinkLabel(t *testing.T) {
	tests := map[string]string{
		"https://www.janedoe.co.uk/about":    "janedoe.co.uk",
		"github.com/jane":                    "github.com",
		"https://www.linkedin.com/in/jane/":  "linkedin.com/in/jane",
		"https://blog.example.com":           "example.com",
		"not a url at all":                   "not a url at all",
	}
	for in, want := range tests {
		assert.Equal(t, want, linkLabel(in), in)
	}
}
