package usecase

import (
	"strings"

	"resume-builder/internal/model"
)

// Section is one renderable block. Content holds the backing data: the
// summary string, or the entry slice of a list section.
type Section struct {
	ID      model.SectionID `json:"id"`
	Title   string          `json:"title"`
	Content any             `json:"content"`
}

// Compose returns the ordered, visible, non-empty sections of doc. Summary
// always comes first when it holds non-blank text. A section missing from visibility counts
// as visible; one whose list is empty is never emitted.
func Compose(doc model.Document, order []model.SectionID, visibility map[model.SectionID]bool) []Section {
	out := []Section{}
	if strings.TrimSpace(doc.Summary) != "" {
		out = append(out, Section{ID: model.SectionSummary, Title: model.SectionSummary.Title(), Content: doc.Summary})
	}
	for _, id := range order {
		if v, ok := visibility[id]; ok && !v {
			continue
		}
		content, n := sectionContent(doc, id)
		if n == 0 {
			continue
		}
		out = append(out, Section{ID: id, Title: id.Title(), Content: content})
	}
	return out
}

func sectionContent(doc model.Document, id model.SectionID) (any, int) {
	switch id {
	case model.SectionEducation:
		return doc.Education, len(doc.Education)
	case model.SectionExperience:
		return doc.Experience, len(doc.Experience)
	case model.SectionProjects:
		return doc.Projects, len(doc.Projects)
	case model.SectionCertifications:
		return doc.Certifications, len(doc.Certifications)
	case model.SectionSkills:
		return doc.Skills, len(doc.Skills)
	case model.SectionLanguages:
		return doc.Languages, len(doc.Languages)
	case model.SectionHobbies:
		return doc.Hobbies, len(doc.Hobbies)
	}
	return nil, 0
}
