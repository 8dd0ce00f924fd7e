package formatters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"resumelens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult, *types.AnalysisResult:
		return "AnalysisResult"
	default:
		return "any"
	}
}

func asResult(data any) (*types.AnalysisResult, error) {
	switch v := data.(type) {
	case types.AnalysisResult:
		return &v, nil
	case *types.AnalysisResult:
		return v, nil
	}
	return nil, fmt.Errorf("expected AnalysisResult, got %T", data)
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter handles plain-text formatting of analysis results.
// All three sections are always emitted; failed tasks get an explicit
// unavailable line.
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, err := asResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== RESUME FEEDBACK ===\n\n")
	if result.Feedback.OK() {
		fb := result.Feedback.Value
		output.WriteString(fmt.Sprintf("Quality Score: %d/100\n\n", fb.QualityScore))
		writeTextList(&output, "Sections Present:", fb.SectionsPresent)
		writeTextList(&output, "Sections Missing:", fb.SectionsMissing)
		if len(fb.SkillsSentiment) > 0 {
			output.WriteString("Skills Sentiment:\n")
			for _, skill := range sortedSkills(fb.SkillsSentiment) {
				s := fb.SkillsSentiment[skill]
				output.WriteString(fmt.Sprintf("- %s: confidence %s, specificity %s\n", skill, s.Confidence, s.Specificity))
			}
			output.WriteString("\n")
		}
		if fb.SkillsSummary != "" {
			output.WriteString("Skills Summary:\n")
			output.WriteString(fb.SkillsSummary)
			output.WriteString("\n\n")
		}
		writeTextList(&output, "Strengths:", fb.Strengths)
		writeTextList(&output, "Suggestions:", fb.Suggestions)
	} else {
		writeTextUnavailable(&output, result.Feedback.Failure)
	}

	output.WriteString("=== STRUCTURED RESUME ===\n\n")
	if result.Structured.OK() {
		sr := result.Structured.Value
		if contact := contactLine(sr.Personal); contact != "" {
			output.WriteString(contact)
			output.WriteString("\n\n")
		}
		if sr.Summary != "" {
			output.WriteString("Summary:\n")
			output.WriteString(sr.Summary)
			output.WriteString("\n\n")
		}
		if len(sr.Experience) > 0 {
			output.WriteString("Experience:\n")
			for _, e := range sr.Experience {
				output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", e.Title, e.Company, e.Duration))
				for _, d := range e.Details {
					output.WriteString(fmt.Sprintf("    %s\n", d))
				}
			}
			output.WriteString("\n")
		}
		if len(sr.Education) > 0 {
			output.WriteString("Education:\n")
			for _, e := range sr.Education {
				output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", e.Degree, e.Institution, e.Year))
			}
			output.WriteString("\n")
		}
		writeTextList(&output, "Skills:", sr.Skills)
		if len(sr.Projects) > 0 {
			output.WriteString("Projects:\n")
			for _, p := range sr.Projects {
				output.WriteString(fmt.Sprintf("- %s: %s\n", p.Name, p.Description))
			}
			output.WriteString("\n")
		}
		writeTextList(&output, "Certifications:", sr.Certifications)
	} else {
		writeTextUnavailable(&output, result.Structured.Failure)
	}

	output.WriteString("=== ATS & JARGON ANALYSIS ===\n\n")
	if result.Ats.OK() {
		ats := result.Ats.Value
		writeTextList(&output, "ATS Recommendations:", ats.AtsRecommendations)
		if len(ats.JargonFlags) > 0 {
			output.WriteString("Jargon & Filler Phrases:\n")
			for _, flag := range ats.JargonFlags {
				output.WriteString(fmt.Sprintf("- %q: %s\n", flag.Phrase, flag.Reason))
			}
			output.WriteString("\n")
		}
		writeTextList(&output, "Keyword Suggestions:", ats.KeywordSuggestions)
		writeTextList(&output, "Formatting Issues:", ats.FormattingIssues)
	} else {
		writeTextUnavailable(&output, result.Ats.Failure)
	}

	output.WriteString(fmt.Sprintf("Generated at: %s\n", result.GeneratedAt.Format(time.RFC3339)))

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

// AnalysisMarkdownFormatter handles markdown formatting of analysis results
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, err := asResult(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis Report\n\n")
	output.WriteString(fmt.Sprintf("_Generated at %s_\n\n", result.GeneratedAt.Format(time.RFC3339)))

	output.WriteString("## Resume Feedback\n\n")
	if result.Feedback.OK() {
		fb := result.Feedback.Value
		output.WriteString(fmt.Sprintf("**Quality Score:** %d/100\n\n", fb.QualityScore))
		writeMarkdownList(&output, "### Sections Present", fb.SectionsPresent)
		writeMarkdownList(&output, "### Sections Missing", fb.SectionsMissing)
		if len(fb.SkillsSentiment) > 0 {
			output.WriteString("### Skills Sentiment\n\n")
			for _, skill := range sortedSkills(fb.SkillsSentiment) {
				s := fb.SkillsSentiment[skill]
				output.WriteString(fmt.Sprintf("- **%s**: confidence %s, specificity %s\n", skill, s.Confidence, s.Specificity))
			}
			output.WriteString("\n")
		}
		if fb.SkillsSummary != "" {
			output.WriteString("### Skills Summary\n\n")
			output.WriteString(fb.SkillsSummary)
			output.WriteString("\n\n")
		}
		writeMarkdownList(&output, "### Strengths", fb.Strengths)
		writeMarkdownList(&output, "### Suggestions", fb.Suggestions)
	} else {
		writeMarkdownUnavailable(&output, result.Feedback.Failure)
	}

	output.WriteString("## Structured Resume\n\n")
	if result.Structured.OK() {
		sr := result.Structured.Value
		if contact := contactLine(sr.Personal); contact != "" {
			output.WriteString(contact)
			output.WriteString("\n\n")
		}
		if sr.Summary != "" {
			output.WriteString(sr.Summary)
			output.WriteString("\n\n")
		}
		if len(sr.Experience) > 0 {
			output.WriteString("### Experience\n\n")
			for _, e := range sr.Experience {
				output.WriteString(fmt.Sprintf("- **%s**, %s (%s)\n", e.Title, e.Company, e.Duration))
				for _, d := range e.Details {
					output.WriteString(fmt.Sprintf("  - %s\n", d))
				}
			}
			output.WriteString("\n")
		}
		if len(sr.Education) > 0 {
			output.WriteString("### Education\n\n")
			for _, e := range sr.Education {
				output.WriteString(fmt.Sprintf("- **%s**, %s (%s)\n", e.Degree, e.Institution, e.Year))
			}
			output.WriteString("\n")
		}
		writeMarkdownList(&output, "### Skills", sr.Skills)
		if len(sr.Projects) > 0 {
			output.WriteString("### Projects\n\n")
			for _, p := range sr.Projects {
				output.WriteString(fmt.Sprintf("- **%s**: %s\n", p.Name, p.Description))
			}
			output.WriteString("\n")
		}
		writeMarkdownList(&output, "### Certifications", sr.Certifications)
	} else {
		writeMarkdownUnavailable(&output, result.Structured.Failure)
	}

	output.WriteString("## ATS & Jargon Analysis\n\n")
	if result.Ats.OK() {
		ats := result.Ats.Value
		writeMarkdownList(&output, "### ATS Recommendations", ats.AtsRecommendations)
		if len(ats.JargonFlags) > 0 {
			output.WriteString("### Jargon & Filler Phrases\n\n")
			for _, flag := range ats.JargonFlags {
				output.WriteString(fmt.Sprintf("- **%q**: %s\n", flag.Phrase, flag.Reason))
			}
			output.WriteString("\n")
		}
		writeMarkdownList(&output, "### Keyword Suggestions", ats.KeywordSuggestions)
		writeMarkdownList(&output, "### Formatting Issues", ats.FormattingIssues)
	} else {
		writeMarkdownUnavailable(&output, result.Ats.Failure)
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

func writeTextList(output *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(heading)
	output.WriteString("\n")
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

func writeMarkdownList(output *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(heading)
	output.WriteString("\n\n")
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}

func writeTextUnavailable(output *strings.Builder, failure *types.TaskFailure) {
	reason := "task did not run"
	if failure != nil {
		reason = failure.Reason
	}
	output.WriteString(fmt.Sprintf("Analysis unavailable: %s\n\n", reason))
}

func writeMarkdownUnavailable(output *strings.Builder, failure *types.TaskFailure) {
	reason := "task did not run"
	if failure != nil {
		reason = failure.Reason
	}
	output.WriteString(fmt.Sprintf("_Analysis unavailable: %s_\n\n", reason))
}

func sortedSkills(sentiment map[string]types.SkillSentiment) []string {
	skills := make([]string, 0, len(sentiment))
	for skill := range sentiment {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

func contactLine(p types.PersonalInfo) string {
	parts := []string{}
	for _, s := range []string{p.Name, p.Email, p.Phone, p.Location, p.LinkedIn} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
