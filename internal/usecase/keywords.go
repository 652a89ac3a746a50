package usecase

import (
	"strings"
	"unicode"

	"resume-builder/internal/model"
)

// minKeywordLen is the shortest token considered significant. It is 3
// rather than 4 so that acronyms such as "aws", "sql" or "api" count as
// keywords; common three-letter words are caught by stopWords instead.
const minKeywordLen = 3

// stopWords is a closed list of common English function words.
var stopWords = map[string]struct{}{
	"all": {}, "and": {}, "any": {}, "are": {}, "but": {}, "can": {}, "did": {},
	"etc": {}, "few": {}, "for": {}, "had": {}, "has": {}, "her": {}, "him": {},
	"his": {}, "how": {}, "its": {}, "may": {}, "nor": {}, "not": {}, "off": {},
	"our": {}, "out": {}, "own": {}, "per": {}, "she": {}, "the": {}, "too": {},
	"via": {}, "was": {}, "who": {}, "why": {}, "yet": {}, "you": {},
	"ago": {}, "day": {}, "get": {}, "got": {}, "job": {}, "let": {}, "new": {},
	"now": {}, "one": {}, "put": {}, "say": {}, "see": {}, "two": {}, "use": {},
	"way": {}, "yes": {},
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {}, "also": {},
	"among": {}, "because": {}, "been": {}, "before": {}, "being": {}, "below": {},
	"between": {}, "both": {}, "could": {}, "does": {}, "doing": {}, "done": {},
	"down": {}, "during": {}, "each": {}, "either": {}, "else": {}, "even": {},
	"every": {}, "from": {}, "further": {}, "have": {}, "having": {}, "here": {},
	"hers": {}, "herself": {}, "himself": {}, "into": {}, "itself": {}, "just": {},
	"like": {}, "many": {}, "more": {}, "most": {}, "much": {}, "must": {},
	"myself": {}, "neither": {}, "once": {}, "only": {}, "other": {}, "ours": {},
	"ourselves": {}, "over": {}, "same": {}, "shall": {}, "should": {}, "since": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "their": {}, "theirs": {},
	"them": {}, "themselves": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "those": {}, "through": {}, "under": {}, "until": {}, "upon": {},
	"very": {}, "were": {}, "what": {}, "when": {}, "where": {}, "whether": {},
	"which": {}, "while": {}, "whom": {}, "whose": {}, "will": {}, "with": {},
	"within": {}, "without": {}, "would": {}, "your": {}, "yours": {}, "yourself": {},
	"yourselves": {},
}

// ResumeText assembles the text that job keywords are matched against:
// summary, skills, hobbies, each experience's role, company and
// description, and each education's degree and institution.
func ResumeText(doc model.Document) string {
	parts := []string{doc.Summary}
	parts = append(parts, doc.Skills...)
	parts = append(parts, doc.Hobbies...)
	for _, e := range doc.Experience {
		parts = append(parts, e.Role, e.Company, e.Description)
	}
	for _, e := range doc.Education {
		parts = append(parts, e.Degree, e.Institution)
	}
	return strings.Join(parts, " ")
}

// JobKeywords extracts the significant, deduplicated terms of a job
// description in order of first appearance.
func JobKeywords(jobDescription string) []string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(jobDescription))

	seen := map[string]struct{}{}
	out := []string{}
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < minKeywordLen {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// MissingKeywords returns the job keywords that do not occur anywhere in
// resumeText. Presence is plain substring containment, so "java" counts as
// present in a résumé mentioning "javascript". The result keeps the order
// of first appearance in the job description.
func MissingKeywords(jobDescription, resumeText string) []string {
	if strings.TrimSpace(jobDescription) == "" {
		return []string{}
	}
	haystack := strings.ToLower(resumeText)
	missing := []string{}
	for _, kw := range JobKeywords(jobDescription) {
		if !strings.Contains(haystack, kw) {
			missing = append(missing, kw)
		}
	}
	return missing
}

// AnalyzeKeywords runs MissingKeywords against the résumé text of doc.
func AnalyzeKeywords(doc model.Document, jobDescription string) []string {
	return MissingKeywords(jobDescription, ResumeText(doc))
}
