package model

import "github.com/google/uuid"

// Go models for the résumé being authored. JSON tags match the snapshot
// shape validated by schema/snapshot.schema.json.

// Template identifies one of the built-in layouts.
type Template string

const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateMinimal Template = "minimal"
)

// Templates lists every supported template in picker order.
var Templates = []Template{TemplateClassic, TemplateModern, TemplateMinimal}

func (t Template) Valid() bool {
	for _, v := range Templates {
		if v == t {
			return true
		}
	}
	return false
}

const (
	DefaultFont        = "Helvetica"
	DefaultAccentColor = "#2563eb"
)

// Proficiency levels offered for language entries.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyAdvanced     = "Advanced"
	ProficiencyFluent       = "Fluent"
	ProficiencyNative       = "Native"
)

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

type Experience struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   string `json:"year"`
}

type Language struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Document is the aggregate root of an authoring session.
type Document struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Title        string `json:"title"`
	Email        string `json:"email"`
	CountryCode  string `json:"countryCode"`
	Phone        string `json:"phone"`
	Summary      string `json:"summary"`
	LinkedIn     string `json:"linkedin"`
	Website      string `json:"website"`
	ProfileImage string `json:"profileImage,omitempty"`

	Template    Template `json:"template"`
	Font        string   `json:"font"`
	AccentColor string   `json:"accentColor"`

	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Skills         []string        `json:"skills"`
	Languages      []Language      `json:"languages"`
	Hobbies        []string        `json:"hobbies"`
}

// NewDocument returns the all-empty document a session starts with.
func NewDocument() Document {
	return Document{
		Template:       TemplateClassic,
		Font:           DefaultFont,
		AccentColor:    DefaultAccentColor,
		Education:      []Education{},
		Experience:     []Experience{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Skills:         []string{},
		Languages:      []Language{},
		Hobbies:        []string{},
	}
}

// Clone returns a copy that shares no slice storage with d.
func (d Document) Clone() Document {
	out := d
	out.Education = append([]Education{}, d.Education...)
	out.Experience = append([]Experience{}, d.Experience...)
	out.Projects = append([]Project{}, d.Projects...)
	out.Certifications = append([]Certification{}, d.Certifications...)
	out.Skills = append([]string{}, d.Skills...)
	out.Languages = append([]Language{}, d.Languages...)
	out.Hobbies = append([]string{}, d.Hobbies...)
	return out
}

func newID() string { return uuid.NewString() }

func NewEducation() Education         { return Education{ID: newID()} }
func NewExperience() Experience       { return Experience{ID: newID()} }
func NewProject() Project             { return Project{ID: newID()} }
func NewCertification() Certification { return Certification{ID: newID()} }

func NewLanguage() Language {
	return Language{ID: newID(), Proficiency: ProficiencyIntermediate}
}

func (e Education) EntryID() string     { return e.ID }
func (e Experience) EntryID() string    { return e.ID }
func (p Project) EntryID() string       { return p.ID }
func (c Certification) EntryID() string { return c.ID }
func (l Language) EntryID() string      { return l.ID }

func (e Education) WithField(key, value string) (Education, bool) {
	switch key {
	case "institution":
		e.Institution = value
	case "degree":
		e.Degree = value
	case "year":
		e.Year = value
	default:
		return e, false
	}
	return e, true
}

func (e Experience) WithField(key, value string) (Experience, bool) {
	switch key {
	case "role":
		e.Role = value
	case "company":
		e.Company = value
	case "period":
		e.Period = value
	case "description":
		e.Description = value
	default:
		return e, false
	}
	return e, true
}

func (p Project) WithField(key, value string) (Project, bool) {
	switch key {
	case "title":
		p.Title = value
	case "description":
		p.Description = value
	case "url":
		p.URL = value
	default:
		return p, false
	}
	return p, true
}

func (c Certification) WithField(key, value string) (Certification, bool) {
	switch key {
	case "name":
		c.Name = value
	case "issuer":
		c.Issuer = value
	case "year":
		c.Year = value
	default:
		return c, false
	}
	return c, true
}

func (l Language) WithField(key, value string) (Language, bool) {
	switch key {
	case "language":
		l.Language = value
	case "proficiency":
		l.Proficiency = value
	default:
		return l, false
	}
	return l, true
}
