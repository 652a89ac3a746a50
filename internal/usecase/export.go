package usecase

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/publicsuffix"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var resumeTemplate = template.Must(template.New("resume.html.tmpl").Funcs(template.FuncMap{
	"label": linkLabel,
	"lines": descriptionLines,
}).ParseFS(templateFS, "templates/resume.html.tmpl"))

// Processor turns a snapshot into its export formats and fetches writing
// suggestions for experience entries.
type Processor struct {
	renderer  Renderer
	suggester Suggester

	renderAttempts int
	backoff        time.Duration
}

// NewProcessor wires the export pipeline. Either dependency may be nil:
// without a renderer PDF export fails, without a suggester no suggestions
// are offered.
func NewProcessor(r Renderer, s Suggester) *Processor {
	return &Processor{renderer: r, suggester: s, renderAttempts: 3, backoff: time.Second}
}

type resumeView struct {
	FullName     string
	Title        string
	Email        string
	Phone        string
	LinkedIn     string
	Website      string
	ProfileImage template.URL
	Template     model.Template
	Font         string
	AccentColor  string
	Sections     []Section
}

func newResumeView(s domain.Snapshot) resumeView {
	d := s.Document
	phone := strings.TrimSpace(d.Phone)
	if phone != "" && d.CountryCode != "" {
		phone = d.CountryCode + " " + phone
	}
	font := d.Font
	if font == "" {
		font = model.DefaultFont
	}
	accent := d.AccentColor
	if accent == "" {
		accent = model.DefaultAccentColor
	}
	tpl := d.Template
	if !tpl.Valid() {
		tpl = model.TemplateClassic
	}
	v := resumeView{
		FullName:    strings.TrimSpace(d.FirstName + " " + d.LastName),
		Title:       d.Title,
		Email:       d.Email,
		Phone:       phone,
		LinkedIn:    d.LinkedIn,
		Website:     d.Website,
		Template:    tpl,
		Font:        font,
		AccentColor: accent,
		Sections:    Compose(d, s.SectionOrder, s.SectionVisibility),
	}
	// profile images are client supplied data: URLs
	if strings.HasPrefix(d.ProfileImage, "data:image/") {
		v.ProfileImage = template.URL(d.ProfileImage)
	}
	return v
}

// RenderHTML renders the print-ready page for a snapshot.
func (p *Processor) RenderHTML(s domain.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, newResumeView(s)); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// RenderMarkdown renders the same page as Markdown.
func (p *Processor) RenderMarkdown(s domain.Snapshot) (string, error) {
	html, err := p.RenderHTML(s)
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}

// ExportPDF renders the snapshot to a single-page PDF. A failed render
// never touches the snapshot.
func (p *Processor) ExportPDF(ctx context.Context, s domain.Snapshot) ([]byte, error) {
	if p.renderer == nil {
		return nil, fmt.Errorf("pdf export: no renderer configured")
	}
	html, err := p.RenderHTML(s)
	if err != nil {
		return nil, err
	}

	var renderErr error
	for i := 0; i < p.renderAttempts; i++ {
		var pdf []byte
		pdf, renderErr = p.renderer.RenderHTMLToPDF(ctx, html)
		if renderErr == nil {
			if bytes.HasPrefix(pdf, []byte("%PDF")) {
				return pdf, nil
			}
			renderErr = fmt.Errorf("invalid PDF output (len=%d)", len(pdf))
		}
		slog.Warn("pdf render attempt failed", "attempt", i+1, "error", renderErr)
		if i < p.renderAttempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * p.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("pdf export failed after %d attempts: %w", p.renderAttempts, renderErr)
}

// Suggestions asks the suggester for bullet points matching an experience
// entry. Without a suggester, or when role and company are both blank, the
// result is empty.
func (p *Processor) Suggestions(ctx context.Context, exp model.Experience) ([]string, error) {
	if p.suggester == nil || strings.TrimSpace(exp.Role+exp.Company) == "" {
		return []string{}, nil
	}
	out, err := p.suggester.SuggestBullets(ctx, exp.Role, exp.Company)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}
	clean := []string{}
	for _, s := range out {
		clean = model.AddUnique(clean, s)
	}
	return clean, nil
}

// linkLabel shortens a URL to its registrable domain for display.
func linkLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}
	host := parsed.Hostname()
	etld, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return strings.TrimPrefix(host, "www.")
	}
	// keep the profile path for linkedin, e.g. linkedin.com/in/jane
	if path := strings.Trim(parsed.Path, "/"); path != "" && strings.HasPrefix(etld, "linkedin.") {
		return etld + "/" + path
	}
	return etld
}

func descriptionLines(desc string) []string {
	out := []string{}
	for _, l := range strings.Split(desc, "\n") {
		l = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(l), "-•*"))
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
