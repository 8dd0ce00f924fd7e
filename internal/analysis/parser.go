// Package analysis turns raw AI responses into validated records and runs
// the per-document analysis pipeline.
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumelens/internal/types"
)

// rawExcerptLimit caps how much of an unparsable response is kept on a
// failure marker for diagnosis.
const rawExcerptLimit = 240

// ParseFeedback converts a raw AI response into a validated FeedbackRecord
// or a failure marker.
func ParseFeedback(raw string) types.TaskOutcome[types.FeedbackRecord] {
	return parseOutcome(raw, validateFeedback)
}

// ParseStructuredResume converts a raw AI response into a validated
// StructuredResume or a failure marker.
func ParseStructuredResume(raw string) types.TaskOutcome[types.StructuredResume] {
	return parseOutcome(raw, validateStructuredResume)
}

// ParseAtsJargon converts a raw AI response into a validated AtsJargonReport
// or a failure marker.
func ParseAtsJargon(raw string) types.TaskOutcome[types.AtsJargonReport] {
	return parseOutcome(raw, validateAtsJargon)
}

// ParseResponse dispatches to the typed parser for a task and returns the
// slot-agnostic view: the validated record as any, or the failure marker.
func ParseResponse(task types.AnalysisTask, raw string) (any, *types.TaskFailure) {
	switch task {
	case types.TaskFeedback:
		o := ParseFeedback(raw)
		if o.OK() {
			return *o.Value, nil
		}
		return nil, o.Failure
	case types.TaskStructuredParse:
		o := ParseStructuredResume(raw)
		if o.OK() {
			return *o.Value, nil
		}
		return nil, o.Failure
	case types.TaskAtsJargon:
		o := ParseAtsJargon(raw)
		if o.OK() {
			return *o.Value, nil
		}
		return nil, o.Failure
	}
	return nil, types.NewTaskFailure(fmt.Sprintf("unknown analysis task: %s", task), "")
}

// parseOutcome is the tolerant parsing pipeline shared by all tasks:
// strip wrapping noise, structurally parse, validate invariants, and on any
// failure run one repair pass over the largest balanced JSON object before
// giving up. It never panics and is deterministic for identical input.
func parseOutcome[T any](raw string, validate func(*T) error) types.TaskOutcome[T] {
	candidate := stripNoise(raw)
	if candidate == "" {
		return types.TaskOutcome[T]{
			Failure: types.NewTaskFailure("response contains no JSON object", excerpt(raw)),
		}
	}

	value, err := decodeAndValidate[T](candidate, validate)
	if err == nil {
		return types.TaskOutcome[T]{Value: value}
	}
	firstErr := err

	// Repair pass: the fence-stripped text may still carry leading or
	// trailing prose, or the first candidate may have been a smaller
	// embedded object. Retry on the largest balanced JSON object found in
	// the full response.
	repaired := largestJSONObject(raw)
	if repaired != "" && repaired != candidate {
		if value, err := decodeAndValidate[T](repaired, validate); err == nil {
			return types.TaskOutcome[T]{Value: value}
		}
	}

	return types.TaskOutcome[T]{
		Failure: types.NewTaskFailure(firstErr.Error(), excerpt(raw)),
	}
}

func decodeAndValidate[T any](candidate string, validate func(*T) error) (*T, error) {
	var value T
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, fmt.Errorf("malformed JSON: %v", err)
	}
	if err := validate(&value); err != nil {
		return nil, fmt.Errorf("schema violation: %v", err)
	}
	return &value, nil
}

// stripNoise removes the wrapping the model adds around structured content:
// surrounding whitespace, markdown code fences, and any prose outside the
// outermost JSON object.
func stripNoise(raw string) string {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	if strings.HasPrefix(clean, "{") && strings.HasSuffix(clean, "}") {
		return clean
	}

	// Prose around the object: fall back to the largest balanced object
	return largestJSONObject(clean)
}

// largestJSONObject scans s for the longest brace-balanced substring that is
// itself valid JSON. The scan is string- and escape-aware so braces inside
// JSON strings do not confuse the depth count.
func largestJSONObject(s string) string {
	best := ""
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			// Only strings inside an object matter; a stray quote in
			// prose outside any braces is harmless to skip over
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				candidate := s[start : i+1]
				if len(candidate) > len(best) && json.Valid([]byte(candidate)) {
					best = candidate
				}
				start = -1
			}
		}
	}

	return best
}

// validateFeedback enforces FeedbackRecord invariants, normalizing where a
// deterministic correction preserves the record's meaning.
func validateFeedback(r *types.FeedbackRecord) error {
	if r.QualityScore < 0 || r.QualityScore > 100 {
		return fmt.Errorf("qualityScore %d outside [0, 100]", r.QualityScore)
	}

	// sectionsPresent and sectionsMissing must stay disjoint; when the
	// model lists a section on both sides, present wins.
	present := make(map[string]bool, len(r.SectionsPresent))
	for _, s := range r.SectionsPresent {
		present[s] = true
	}
	missing := r.SectionsMissing[:0]
	for _, s := range r.SectionsMissing {
		if !present[s] {
			missing = append(missing, s)
		}
	}
	r.SectionsMissing = missing

	// Normalize sentiment grades; entries with unknown grades carry no
	// usable signal and are dropped rather than failing the whole record.
	for skill, sentiment := range r.SkillsSentiment {
		sentiment.Confidence = types.SentimentLevel(strings.ToLower(string(sentiment.Confidence)))
		sentiment.Specificity = types.SentimentLevel(strings.ToLower(string(sentiment.Specificity)))
		if !types.ValidSentimentLevel(sentiment.Confidence) || !types.ValidSentimentLevel(sentiment.Specificity) {
			delete(r.SkillsSentiment, skill)
			continue
		}
		r.SkillsSentiment[skill] = sentiment
	}

	ensureSlices(&r.SectionsPresent, &r.SectionsMissing, &r.Strengths, &r.Suggestions)
	if r.SkillsSentiment == nil {
		r.SkillsSentiment = map[string]types.SkillSentiment{}
	}
	return nil
}

// validateStructuredResume rejects resumes with no usable content; an AI
// response that extracted nothing is a parse failure, not an empty resume.
func validateStructuredResume(r *types.StructuredResume) error {
	if r.IsEmpty() {
		return fmt.Errorf("structured resume has no experience, education or skills")
	}
	ensureSlices(&r.Skills, &r.Certifications)
	if r.Experience == nil {
		r.Experience = []types.ExperienceEntry{}
	}
	if r.Education == nil {
		r.Education = []types.EducationEntry{}
	}
	if r.Projects == nil {
		r.Projects = []types.ProjectEntry{}
	}
	return nil
}

func validateAtsJargon(r *types.AtsJargonReport) error {
	ensureSlices(&r.AtsRecommendations, &r.KeywordSuggestions, &r.FormattingIssues)
	if r.JargonFlags == nil {
		r.JargonFlags = []types.JargonFlag{}
	}
	return nil
}

// ensureSlices replaces nil string slices with empty ones so exports render
// [] rather than null.
func ensureSlices(slices ...*[]string) {
	for _, s := range slices {
		if *s == nil {
			*s = []string{}
		}
	}
}

// excerpt keeps the head of an unparsable response for diagnosis
func excerpt(raw string) string {
	trimmed := strings.TrimSpace(raw)
	runes := []rune(trimmed)
	if len(runes) <= rawExcerptLimit {
		return trimmed
	}
	return string(runes[:rawExcerptLimit]) + "..."
}
