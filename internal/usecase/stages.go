package usecase

import (
	"strings"

	"resume-builder/internal/model"
)

// Step is one screen of the authoring flow.
type Step int

const (
	StepPersonal Step = iota
	StepSummary
	StepEducation
	StepExperience
	StepSkills
	StepPreview
)

var stepNames = [...]string{"personal", "summary", "education", "experience", "skills", "preview"}

func (s Step) String() string {
	if s < StepPersonal || s > StepPreview {
		return "unknown"
	}
	return stepNames[s]
}

// StageValidationResult holds the completeness state of a step.
type StageValidationResult struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing"`
	Error   string   `json:"error,omitempty"`
}

// personalFields must be filled before leaving the first step; the ones
// that have validators must also validate.
var personalFields = []string{
	model.FieldFirstName,
	model.FieldLastName,
	model.FieldTitle,
	model.FieldEmail,
	model.FieldPhone,
}

// StageValidator evaluates the completeness predicate of step against a
// document and its validation error map. It holds no state.
func StageValidator(step Step, doc model.Document, errs map[string]string) *StageValidationResult {
	result := &StageValidationResult{Valid: true, Missing: []string{}}
	missing := func(what string) {
		result.Valid = false
		result.Missing = append(result.Missing, what)
	}

	switch step {
	case StepPersonal:
		for _, f := range personalFields {
			v, _ := doc.Field(f)
			if strings.TrimSpace(v) == "" {
				missing(f)
				continue
			}
			if errs[f] != "" {
				missing(f)
			}
		}
	case StepSummary:
		if strings.TrimSpace(doc.Summary) == "" {
			missing(model.FieldSummary)
		}
	case StepEducation:
		if len(doc.Education) == 0 {
			missing(string(model.SectionEducation))
		}
	case StepExperience:
		if len(doc.Experience) == 0 {
			missing(string(model.SectionExperience))
		}
	case StepSkills:
		if len(doc.Skills) == 0 {
			missing(string(model.SectionSkills))
		}
	default:
		result.Valid = false
		result.Error = "no step after " + step.String()
	}
	return result
}

// StepGate is the six-step progression. Its only state is the current step.
type StepGate struct {
	step Step
}

func (g *StepGate) Current() Step { return g.step }

// Next advances one step if the current step is complete. It returns the
// completeness result used for the decision.
func (g *StepGate) Next(doc model.Document, errs map[string]string) *StageValidationResult {
	res := StageValidator(g.step, doc, errs)
	if res.Valid && g.step < StepPreview {
		g.step++
	}
	return res
}

// Back moves one step back; it reports false on the first step.
func (g *StepGate) Back() bool {
	if g.step == StepPersonal {
		return false
	}
	g.step--
	return true
}

func (g *StepGate) Reset() { g.step = StepPersonal }
