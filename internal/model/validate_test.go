package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateField_Names(t *testing.T) {
	valid := []string{"Jane", "Mary Ann", "O'Brien", "Jean-Luc", "Zoë", "José María"}
	for _, v := range valid {
		assert.Empty(t, ValidateField(FieldFirstName, v), v)
		assert.Empty(t, ValidateField(FieldLastName, v), v)
	}

	invalid := []string{"", "   ", "Jane2", "R2-D2", "jane@doe", "Ann_Marie", "Bob!"}
	for _, v := range invalid {
		assert.NotEmpty(t, ValidateField(FieldFirstName, v), v)
		assert.NotEmpty(t, ValidateField(FieldLastName, v), v)
	}
}

func TestValidateField_Email(t *testing.T) {
	assert.Empty(t, ValidateField(FieldEmail, "jane@doe.com"))
	assert.Empty(t, ValidateField(FieldEmail, "j.doe+cv@mail.example.org"))

	assert.Equal(t, "Email is required", ValidateField(FieldEmail, ""))
	assert.NotEmpty(t, ValidateField(FieldEmail, "jane@doe"))
	assert.NotEmpty(t, ValidateField(FieldEmail, "jane doe@x.com"))
	assert.NotEmpty(t, ValidateField(FieldEmail, "@doe.com"))
}

func TestValidateField_Phone(t *testing.T) {
	assert.Empty(t, ValidateField(FieldPhone, "123 456 7890"))
	assert.Empty(t, ValidateField(FieldPhone, "555-0100"))

	assert.Equal(t, "Phone number is required", ValidateField(FieldPhone, ""))
	assert.NotEmpty(t, ValidateField(FieldPhone, "+1 555 0100"))
	assert.NotEmpty(t, ValidateField(FieldPhone, "(555) 0100"))
	assert.NotEmpty(t, ValidateField(FieldPhone, "call me"))
}

func TestValidateField_URLs(t *testing.T) {
	for _, f := range []string{FieldLinkedIn, FieldWebsite} {
		assert.Empty(t, ValidateField(f, ""), f)
		assert.Empty(t, ValidateField(f, "https://linkedin.com/in/jane"), f)
		assert.Empty(t, ValidateField(f, "http://jane.dev"), f)

		assert.NotEmpty(t, ValidateField(f, "linkedin.com/in/jane"), f)
		assert.NotEmpty(t, ValidateField(f, "https://localhost"), f)
		assert.NotEmpty(t, ValidateField(f, "ftp://jane.dev"), f)
	}
}

func TestValidateField_OtherFieldsAlwaysValid(t *testing.T) {
	for _, f := range []string{FieldTitle, FieldSummary, FieldCountryCode, FieldProfileImage, "unknown"} {
		assert.Empty(t, ValidateField(f, ""), f)
		assert.Empty(t, ValidateField(f, "$$$ 123 !!!"), f)
	}
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"order only", `{"sectionOrder":["hobbies","languages","skills","certifications","projects","experience","education"]}`, false},
		{"visibility subset", `{"sectionVisibility":{"skills":false}}`, false},
		{"document fields", `{"document":{"firstName":"Jane","skills":["Go"],"template":"modern"}}`, false},
		{"not json", `{"document":`, true},
		{"array root", `[]`, true},
		{"order too short", `{"sectionOrder":["education"]}`, true},
		{"order duplicate", `{"sectionOrder":["education","education","projects","certifications","skills","languages","hobbies"]}`, true},
		{"order unknown id", `{"sectionOrder":["summary","experience","projects","certifications","skills","languages","hobbies"]}`, true},
		{"visibility unknown key", `{"sectionVisibility":{"summary":true}}`, true},
		{"visibility non bool", `{"sectionVisibility":{"skills":"yes"}}`, true},
		{"unknown template", `{"document":{"template":"fancy"}}`, true},
		{"skills not strings", `{"document":{"skills":[1,2]}}`, true},
		{"null document", `{"document":null}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSectionHelpers(t *testing.T) {
	assert.True(t, IsPermutation(DefaultSectionOrder()))
	assert.False(t, IsPermutation(DefaultSectionOrder()[:6]))
	assert.False(t, SectionSummary.Valid())
	assert.Equal(t, "Certifications", SectionCertifications.Title())

	order := DefaultSectionOrder()
	order[0] = SectionHobbies
	assert.Equal(t, SectionEducation, ListSections[0])

	vis := DefaultSectionVisibility()
	assert.Len(t, vis, 7)
	for _, v := range vis {
		assert.True(t, v)
	}
}

func TestDocumentFieldAccess(t *testing.T) {
	d := NewDocument()
	assert.True(t, d.SetField(FieldEmail, "jane@doe.com"))
	assert.False(t, d.SetField("skills", "Go"))

	v, ok := d.Field(FieldEmail)
	assert.True(t, ok)
	assert.Equal(t, "jane@doe.com", v)

	c := d.Clone()
	c.Skills = append(c.Skills, "Go")
	assert.Empty(t, d.Skills)
}
