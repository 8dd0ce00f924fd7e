package formatters

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"resumelens/internal/types"
)

func sampleResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		Feedback: types.TaskOutcome[types.FeedbackRecord]{
			Value: &types.FeedbackRecord{
				QualityScore:    68,
				SectionsPresent: []string{"Experience", "Education"},
				SectionsMissing: []string{"Projects"},
				SkillsSentiment: map[string]types.SkillSentiment{
					"Python": {Confidence: types.SentimentHigh, Specificity: types.SentimentMedium},
				},
				Strengths:   []string{"Clear work history"},
				Suggestions: []string{"Add measurable outcomes"},
			},
		},
		Structured: types.TaskOutcome[types.StructuredResume]{
			Value: &types.StructuredResume{
				Personal:   types.PersonalInfo{Name: "Jane Doe", Email: "jane@example.com"},
				Experience: []types.ExperienceEntry{{Title: "Software Engineer", Company: "Acme", Duration: "2019-2024", Details: []string{"Built data pipelines"}}},
				Education:  []types.EducationEntry{{Degree: "BSc Computer Science", Institution: "State University", Year: "2019"}},
				Skills:     []string{"Python", "Go"},
			},
		},
		Ats: types.TaskOutcome[types.AtsJargonReport]{
			Failure: types.NewTaskFailure("response contains no JSON object", "sorry"),
		},
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestTextFormatterRendersAllSections(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleResult(), "text")
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	for _, heading := range []string{"=== RESUME FEEDBACK ===", "=== STRUCTURED RESUME ===", "=== ATS & JARGON ANALYSIS ==="} {
		if !strings.Contains(output, heading) {
			t.Errorf("output is missing section %q", heading)
		}
	}
	if !strings.Contains(output, "Quality Score: 68/100") {
		t.Error("output is missing the quality score")
	}
	if !strings.Contains(output, "Jane Doe") {
		t.Error("output is missing the candidate name")
	}
	if !strings.Contains(output, "Analysis unavailable: response contains no JSON object") {
		t.Error("failed section must render its unavailable line")
	}
}

func TestMarkdownFormatterRendersAllSections(t *testing.T) {
	output, err := GlobalRegistry.Format(sampleResult(), "markdown")
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}

	for _, heading := range []string{"## Resume Feedback", "## Structured Resume", "## ATS & Jargon Analysis"} {
		if !strings.Contains(output, heading) {
			t.Errorf("output is missing section %q", heading)
		}
	}
	if !strings.Contains(output, "_Analysis unavailable: response contains no JSON object_") {
		t.Error("failed section must render its unavailable line")
	}
}

func TestAllTasksFailedStillRendersEverySection(t *testing.T) {
	result := &types.AnalysisResult{
		Feedback:    types.TaskOutcome[types.FeedbackRecord]{Failure: types.NewTaskFailure("AI unavailable", "")},
		Structured:  types.TaskOutcome[types.StructuredResume]{Failure: types.NewTaskFailure("AI unavailable", "")},
		Ats:         types.TaskOutcome[types.AtsJargonReport]{Failure: types.NewTaskFailure("AI unavailable", "")},
		GeneratedAt: time.Now().UTC(),
	}

	for _, format := range []string{"text", "markdown"} {
		output, err := GlobalRegistry.Format(result, format)
		if err != nil {
			t.Fatalf("Format(%s) error: %v", format, err)
		}
		if got := strings.Count(output, "Analysis unavailable"); got != 3 {
			t.Errorf("format %s: unavailable count = %d, want 3", format, got)
		}
	}
}

func TestJSONFormatterAcceptsAnything(t *testing.T) {
	output, err := GlobalRegistry.Format(map[string]int{"a": 1}, "json")
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if !strings.Contains(output, `"a": 1`) {
		t.Errorf("output = %q", output)
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := GlobalRegistry.Format(sampleResult(), "xml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestGetSupportedFormats(t *testing.T) {
	got := GlobalRegistry.GetSupportedFormats()
	want := []string{"json", "markdown", "text"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetSupportedFormats() = %v, want %v", got, want)
	}
}

func TestFormatterIsDeterministic(t *testing.T) {
	result := sampleResult()
	first, err := GlobalRegistry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	second, err := GlobalRegistry.Format(result, "text")
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if first != second {
		t.Error("identical results must format identically")
	}
}
