// Package textextract pulls plain text out of uploaded job descriptions and
// résumé files.
package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeJSON = "application/json"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// DetectMime resolves the type of an upload from its file name, falling back
// to the declared content type.
func DetectMime(filename, declared string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return MimeText
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDocx
	case ".json":
		return MimeJSON
	}
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		return mt
	}
	return declared
}

// Extract returns the plain text of data.
func Extract(mimeType string, data []byte) (string, error) {
	switch mimeType {
	case MimeText:
		return string(data), nil
	case MimePDF:
		return extractPDFText(data)
	case MimeDocx:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return stripXML(doc.Editable().GetContent()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

// stripXML turns WordprocessingML into text, one paragraph per line.
func stripXML(content string) string {
	content = paragraphEnd.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasPrefix(m, "<w:tab") {
			return " "
		}
		return "\n"
	})
	content = html.UnescapeString(xmlTag.ReplaceAllString(content, ""))
	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
