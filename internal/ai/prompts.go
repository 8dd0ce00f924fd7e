package ai

import (
	"fmt"

	"resumelens/internal/errors"
	"resumelens/internal/schema"
	"resumelens/internal/types"
)

// TaskPrompts holds the system instruction and user prompt template for one
// analysis task. The user template takes the schema description and the
// resume text, in that order.
type TaskPrompts struct {
	System string
	User   string
}

// DefaultTaskPrompts provides the built-in prompts per task. The JSON shape
// embedded in each user prompt is rendered from the same schema definition
// the response parser validates against.
var DefaultTaskPrompts = map[types.AnalysisTask]TaskPrompts{
	types.TaskFeedback: {
		System: `You are an expert resume reviewer and career coach. Your core principles are:

- Judge only what the resume actually states; never assume unstated experience
- Score consistently: an average resume scores near 50, an exceptional one above 85
- Be specific in every suggestion; name the section or line it applies to
- Keep feedback professional and actionable`,

		User: `Analyze the resume below and return a single JSON object with exactly this structure:

%s

Scoring guidance: qualityScore is an integer from 0 to 100 for overall resume quality.
A section never appears in both sectionsPresent and sectionsMissing.

Return ONLY the JSON object. No markdown fences, no commentary, no explanation.

Resume:
-----
%s
-----`,
	},

	types.TaskStructuredParse: {
		System: `You are a precise resume parser. Your core principles are:

- Copy content from the resume verbatim; never paraphrase, invent or summarize
- Preserve the document order of experience, education and project entries
- Omit optional fields the resume does not state rather than guessing`,

		User: `Parse the resume below into a single JSON object with exactly this structure:

%s

Use an empty array for list fields with no content. Do not fabricate entries.

Return ONLY the JSON object. No markdown fences, no commentary, no explanation.

Resume:
-----
%s
-----`,
	},

	types.TaskAtsJargon: {
		System: `You are an expert on applicant tracking systems (ATS) and resume screening automation. Your core principles are:

- Flag concrete phrases from the resume, quoted verbatim
- Explain why each flagged phrase weakens the resume
- Recommend keywords relevant to the candidate's actual field`,

		User: `Analyze the resume below for ATS-friendliness and jargon. Return a single JSON object with exactly this structure:

%s

Return ONLY the JSON object. No markdown fences, no commentary, no explanation.

Resume:
-----
%s
-----`,
	},
}

// BuildPrompt produces the full user prompt for a task: the task template
// with the schema description and resume text substituted in. Deterministic
// for identical inputs.
func BuildPrompt(task types.AnalysisTask, resumeText string) (string, error) {
	prompts, ok := DefaultTaskPrompts[task]
	if !ok {
		return "", errors.NewInternalError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("No prompt template for task: %s", task), nil)
	}

	def, ok := schema.ForTask(task)
	if !ok {
		return "", errors.NewInternalError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("No output schema for task: %s", task), nil)
	}

	return fmt.Sprintf(prompts.User, def.Describe(), resumeText), nil
}

// SystemPrompt returns the system instruction for a task, empty when unknown.
func SystemPrompt(task types.AnalysisTask) string {
	return DefaultTaskPrompts[task].System
}
