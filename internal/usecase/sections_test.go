package usecase

import (
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
)

func sectionIDs(sections []Section) []model.SectionID {
	out := []model.SectionID{}
	for _, s := range sections {
		out = append(out, s.ID)
	}
	return out
}

func TestCompose(t *testing.T) {
	doc := model.NewDocument()
	assert.Empty(t, Compose(doc, model.DefaultSectionOrder(), model.DefaultSectionVisibility()))

	doc.Summary = "Backend engineer."
	doc.Skills = []string{"Go"}
	doc.Experience = []model.Experience{{ID: "x", Role: "Engineer"}}
	doc.Hobbies = []string{"Chess"}

	order := []model.SectionID{
		model.SectionSkills,
		model.SectionHobbies,
		model.SectionEducation,
		model.SectionExperience,
		model.SectionProjects,
		model.SectionCertifications,
		model.SectionLanguages,
	}
	vis := model.DefaultSectionVisibility()
	vis[model.SectionHobbies] = false

	got := Compose(doc, order, vis)
	assert.Equal(t, []model.SectionID{model.SectionSummary, model.SectionSkills, model.SectionExperience}, sectionIDs(got))
	assert.Equal(t, "Summary", got[0].Title)
	assert.Equal(t, "Backend engineer.", got[0].Content)
	assert.Equal(t, []string{"Go"}, got[1].Content)
}

func TestCompose_MissingVisibilityMeansVisible(t *testing.T) {
	doc := model.NewDocument()
	doc.Skills = []string{"Go"}
	got := Compose(doc, model.DefaultSectionOrder(), map[model.SectionID]bool{})
	assert.Equal(t, []model.SectionID{model.SectionSkills}, sectionIDs(got))
}

func TestCompose_BlankSummaryIsSkipped(t *testing.T) {
	doc := model.NewDocument()
	doc.Summary = " \n\t"
	doc.Skills = []string{"Go"}
	got := Compose(doc, model.DefaultSectionOrder(), model.DefaultSectionVisibility())
	assert.Equal(t, []model.SectionID{model.SectionSkills}, sectionIDs(got))
}
