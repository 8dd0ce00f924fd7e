package types

import (
	"encoding/json"
	"time"
)

// AnalysisTask identifies one of the independent AI-backed analyses run
// against the same resume text.
type AnalysisTask string

const (
	TaskFeedback        AnalysisTask = "feedback"
	TaskStructuredParse AnalysisTask = "structured_parse"
	TaskAtsJargon       AnalysisTask = "ats_jargon"
)

// AllTasks returns every analysis task in a fixed order.
func AllTasks() []AnalysisTask {
	return []AnalysisTask{TaskFeedback, TaskStructuredParse, TaskAtsJargon}
}

// SentimentLevel grades confidence or specificity of a skill mention
type SentimentLevel string

const (
	SentimentLow    SentimentLevel = "low"
	SentimentMedium SentimentLevel = "medium"
	SentimentHigh   SentimentLevel = "high"
)

// ValidSentimentLevel reports whether s is one of the three known grades.
func ValidSentimentLevel(s SentimentLevel) bool {
	switch s {
	case SentimentLow, SentimentMedium, SentimentHigh:
		return true
	}
	return false
}

// SkillSentiment describes how a single skill is presented in the resume
type SkillSentiment struct {
	Confidence  SentimentLevel `json:"confidence"`
	Specificity SentimentLevel `json:"specificity"`
}

// FeedbackRecord represents the scored feedback analysis of a resume
type FeedbackRecord struct {
	QualityScore    int                       `json:"qualityScore"`
	SectionsPresent []string                  `json:"sectionsPresent"`
	SectionsMissing []string                  `json:"sectionsMissing"`
	SkillsSentiment map[string]SkillSentiment `json:"skillsSentiment"`
	SkillsSummary   string                    `json:"skillsSummary,omitempty"`
	Strengths       []string                  `json:"strengths"`
	Suggestions     []string                  `json:"suggestions"`
}

// PersonalInfo holds contact details extracted from a resume. Every field is
// optional; the AI leaves out what the resume does not state.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// ExperienceEntry represents one position in the work history
type ExperienceEntry struct {
	Title    string   `json:"title,omitempty"`
	Company  string   `json:"company,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Details  []string `json:"details,omitempty"`
}

// EducationEntry represents one education item
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	Details     string `json:"details,omitempty"`
}

// ProjectEntry represents one project item
type ProjectEntry struct {
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// StructuredResume is the resume content normalized into a fixed schema,
// independent of the original document layout.
type StructuredResume struct {
	Personal       PersonalInfo      `json:"personal"`
	Summary        string            `json:"summary,omitempty"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         []string          `json:"skills"`
	Projects       []ProjectEntry    `json:"projects,omitempty"`
	Certifications []string          `json:"certifications,omitempty"`
}

// IsEmpty reports whether the resume carries no usable content. An empty
// structured resume is treated as a parse failure, not a valid record.
func (r StructuredResume) IsEmpty() bool {
	return len(r.Experience) == 0 && len(r.Education) == 0 && len(r.Skills) == 0
}

// JargonFlag marks a buzzword or filler phrase with the reason it was flagged
type JargonFlag struct {
	Phrase string `json:"phrase"`
	Reason string `json:"reason"`
}

// AtsJargonReport represents the ATS-compatibility and jargon analysis
type AtsJargonReport struct {
	AtsRecommendations []string     `json:"atsRecommendations"`
	JargonFlags        []JargonFlag `json:"jargonFlags"`
	KeywordSuggestions []string     `json:"keywordSuggestions"`
	FormattingIssues   []string     `json:"formattingIssues,omitempty"`
}

// TaskFailure records why a single analysis task produced no usable record.
// It is a value carried inside AnalysisResult, never an error that aborts
// the other tasks.
type TaskFailure struct {
	Status     string `json:"status"` // always "failed"
	Reason     string `json:"reason"`
	RawExcerpt string `json:"rawExcerpt,omitempty"`
}

// NewTaskFailure builds a failure marker with the canonical status value
func NewTaskFailure(reason, rawExcerpt string) *TaskFailure {
	return &TaskFailure{Status: "failed", Reason: reason, RawExcerpt: rawExcerpt}
}

// TaskOutcome is one result slot of an AnalysisResult: either a typed record
// or a failure marker, never both.
type TaskOutcome[T any] struct {
	Value   *T
	Failure *TaskFailure
}

// OK reports whether the task produced a usable record
func (o TaskOutcome[T]) OK() bool {
	return o.Value != nil && o.Failure == nil
}

// MarshalJSON serializes the record when present, otherwise the failure
// marker, so every section of an export carries exactly one shape.
func (o TaskOutcome[T]) MarshalJSON() ([]byte, error) {
	if o.Failure != nil {
		return json.Marshal(o.Failure)
	}
	if o.Value != nil {
		return json.Marshal(o.Value)
	}
	return json.Marshal(NewTaskFailure("task did not run", ""))
}

// UnmarshalJSON restores a slot from its export form by probing for the
// failure marker shape first.
func (o *TaskOutcome[T]) UnmarshalJSON(data []byte) error {
	var probe struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Status == "failed" {
		var f TaskFailure
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		o.Failure = &f
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	o.Failure = nil
	return nil
}

// AnalysisResult aggregates the three task outcomes of one analysis run.
// Per-task failure does not invalidate the other slots.
type AnalysisResult struct {
	Feedback    TaskOutcome[FeedbackRecord]   `json:"feedback"`
	Structured  TaskOutcome[StructuredResume] `json:"structured"`
	Ats         TaskOutcome[AtsJargonReport]  `json:"ats"`
	GeneratedAt time.Time                     `json:"generatedAt"`
}
