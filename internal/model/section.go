package model

// SectionID names one composable block of the résumé.
type SectionID string

const (
	SectionSummary        SectionID = "summary"
	SectionEducation      SectionID = "education"
	SectionExperience     SectionID = "experience"
	SectionProjects       SectionID = "projects"
	SectionCertifications SectionID = "certifications"
	SectionSkills         SectionID = "skills"
	SectionLanguages      SectionID = "languages"
	SectionHobbies        SectionID = "hobbies"
)

// ListSections are the seven list-backed sections. Summary is not one of
// them: it is always rendered first and cannot be reordered or hidden.
var ListSections = []SectionID{
	SectionEducation,
	SectionExperience,
	SectionProjects,
	SectionCertifications,
	SectionSkills,
	SectionLanguages,
	SectionHobbies,
}

var sectionTitles = map[SectionID]string{
	SectionSummary:        "Summary",
	SectionEducation:      "Education",
	SectionExperience:     "Experience",
	SectionProjects:       "Projects",
	SectionCertifications: "Certifications",
	SectionSkills:         "Skills",
	SectionLanguages:      "Languages",
	SectionHobbies:        "Hobbies",
}

// Valid reports whether s is one of the seven list-backed sections.
func (s SectionID) Valid() bool {
	for _, id := range ListSections {
		if id == s {
			return true
		}
	}
	return false
}

func (s SectionID) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	return string(s)
}

// DefaultSectionOrder returns a fresh copy of the initial order.
func DefaultSectionOrder() []SectionID {
	return append([]SectionID{}, ListSections...)
}

// DefaultSectionVisibility marks every section visible.
func DefaultSectionVisibility() map[SectionID]bool {
	out := make(map[SectionID]bool, len(ListSections))
	for _, id := range ListSections {
		out[id] = true
	}
	return out
}

// IsPermutation reports whether order contains each list section exactly once.
func IsPermutation(order []SectionID) bool {
	if len(order) != len(ListSections) {
		return false
	}
	seen := make(map[SectionID]bool, len(order))
	for _, id := range order {
		if !id.Valid() || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
