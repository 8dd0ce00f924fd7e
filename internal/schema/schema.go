// Package schema holds the output contract shared by the prompt builder and
// the response parser. Each analysis task has exactly one Definition; the
// JSON-shape block embedded in a prompt is rendered from it, and the typed
// record the parser validates carries matching field tags. A schema change
// therefore happens in one place per side and cannot drift silently.
package schema

import (
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// Field describes a single field of a task's JSON output
type Field struct {
	Name        string // JSON field name
	Type        string // type hint shown to the model, e.g. `["string"]`
	Description string // short directive for the model
	Required    bool
}

// Definition is the output contract of one analysis task
type Definition struct {
	Name   string
	Fields []Field
}

// Describe renders the JSON-shape block that is embedded verbatim in the
// task's prompt.
func (d Definition) Describe() string {
	var sb strings.Builder

	sb.WriteString("{\n")
	for i, field := range d.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(d.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")

	return sb.String()
}

// FieldNames returns the JSON field names in declaration order.
func (d Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// ForTask returns the Definition for the given analysis task.
func ForTask(task types.AnalysisTask) (Definition, bool) {
	switch task {
	case types.TaskFeedback:
		return Feedback(), true
	case types.TaskStructuredParse:
		return StructuredResume(), true
	case types.TaskAtsJargon:
		return AtsJargon(), true
	}
	return Definition{}, false
}

// Feedback returns the output contract for the scored feedback task.
func Feedback() Definition {
	return Definition{
		Name: "Feedback",
		Fields: []Field{
			{
				Name:        "qualityScore",
				Type:        "number",
				Description: "overall resume quality, integer between 0 and 100",
				Required:    true,
			},
			{
				Name:        "sectionsPresent",
				Type:        `["string"]`,
				Description: "resume sections found, e.g. \"Experience\", \"Education\"",
				Required:    true,
			},
			{
				Name:        "sectionsMissing",
				Type:        `["string"]`,
				Description: "important sections that are absent; never repeat a present section",
				Required:    true,
			},
			{
				Name:        "skillsSentiment",
				Type:        `{"skill": {"confidence": "low|medium|high", "specificity": "low|medium|high"}}`,
				Description: "per-skill assessment of how convincingly the skill is evidenced",
			},
			{
				Name:        "skillsSummary",
				Type:        `"string"`,
				Description: "one-paragraph sentiment summary of the skills section",
			},
			{
				Name:        "strengths",
				Type:        `["string"]`,
				Description: "well-written aspects worth keeping",
				Required:    true,
			},
			{
				Name:        "suggestions",
				Type:        `["string"]`,
				Description: "specific, actionable improvement suggestions",
				Required:    true,
			},
		},
	}
}

// StructuredResume returns the output contract for the structured parse task.
func StructuredResume() Definition {
	return Definition{
		Name: "StructuredResume",
		Fields: []Field{
			{
				Name:        "personal",
				Type:        `{"name": "string", "email": "string", "phone": "string", "location": "string", "linkedin": "string"}`,
				Description: "contact details; omit fields the resume does not state",
			},
			{
				Name:        "summary",
				Type:        `"string"`,
				Description: "professional summary if present",
			},
			{
				Name:        "experience",
				Type:        `[{"title": "string", "company": "string", "duration": "string", "details": ["string"]}]`,
				Description: "work history in document order",
				Required:    true,
			},
			{
				Name:        "education",
				Type:        `[{"degree": "string", "institution": "string", "year": "string", "details": "string"}]`,
				Description: "education in document order",
				Required:    true,
			},
			{
				Name:        "skills",
				Type:        `["string"]`,
				Description: "distinct skills, no duplicates",
				Required:    true,
			},
			{
				Name:        "projects",
				Type:        `[{"name": "string", "description": "string", "technologies": ["string"]}]`,
				Description: "projects in document order",
			},
			{
				Name:        "certifications",
				Type:        `["string"]`,
				Description: "certification names",
			},
		},
	}
}

// AtsJargon returns the output contract for the ATS and jargon task.
func AtsJargon() Definition {
	return Definition{
		Name: "AtsJargon",
		Fields: []Field{
			{
				Name:        "atsRecommendations",
				Type:        `["string"]`,
				Description: "changes that improve applicant-tracking-system compatibility",
				Required:    true,
			},
			{
				Name:        "jargonFlags",
				Type:        `[{"phrase": "string", "reason": "string"}]`,
				Description: "buzzwords or filler phrases with the reason each hurts clarity",
				Required:    true,
			},
			{
				Name:        "keywordSuggestions",
				Type:        `["string"]`,
				Description: "industry keywords worth adding, no duplicates",
				Required:    true,
			},
			{
				Name:        "formattingIssues",
				Type:        `["string"]`,
				Description: "formatting problems that confuse automated screening",
			},
		},
	}
}
