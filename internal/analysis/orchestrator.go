package analysis

import (
	"context"
	"sync"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/document"
	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Orchestrator runs the full analysis pipeline for one document: text
// extraction, then the three AI tasks fanned out concurrently, each writing
// to its own result slot.
type Orchestrator struct {
	gateway ai.Gateway
	logger  *errors.Logger
}

// NewOrchestrator creates an orchestrator on top of a gateway
func NewOrchestrator(gateway ai.Gateway, logger *errors.Logger) *Orchestrator {
	return &Orchestrator{gateway: gateway, logger: logger}
}

// Analyze extracts text from the document and runs all analysis tasks.
// Document-level failures (unsupported format, empty document) are fatal and
// returned before any gateway call. Once extraction succeeds a result is
// always returned: task-level failures are recorded in the corresponding
// slot and never abort the other tasks.
func (o *Orchestrator) Analyze(ctx context.Context, doc document.SourceDocument) (*types.AnalysisResult, error) {
	text, err := document.Extract(doc)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Document text extracted",
		"format", string(doc.Format),
		"text_chars", len(text))

	result := &types.AnalysisResult{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		result.Feedback = runTask(ctx, o, types.TaskFeedback, text, ParseFeedback)
	}()
	go func() {
		defer wg.Done()
		result.Structured = runTask(ctx, o, types.TaskStructuredParse, text, ParseStructuredResume)
	}()
	go func() {
		defer wg.Done()
		result.Ats = runTask(ctx, o, types.TaskAtsJargon, text, ParseAtsJargon)
	}()
	wg.Wait()

	result.GeneratedAt = time.Now().UTC()

	o.logger.Info("Analysis run completed",
		"feedback_ok", result.Feedback.OK(),
		"structured_ok", result.Structured.OK(),
		"ats_ok", result.Ats.OK())

	return result, nil
}

// runTask executes one task pipeline: build prompt, call the gateway, parse
// the response. Every failure mode collapses into the task's failure marker.
func runTask[T any](ctx context.Context, o *Orchestrator, task types.AnalysisTask, text string, parse func(string) types.TaskOutcome[T]) types.TaskOutcome[T] {
	prompt, err := ai.BuildPrompt(task, text)
	if err != nil {
		o.logger.LogError(err, "Prompt construction failed", "task", string(task))
		return types.TaskOutcome[T]{Failure: types.NewTaskFailure(err.Error(), "")}
	}

	raw, err := o.gateway.Complete(ctx, task, prompt)
	if err != nil {
		o.logger.LogError(err, "Gateway call failed", "task", string(task))
		return types.TaskOutcome[T]{Failure: types.NewTaskFailure(err.Error(), "")}
	}

	outcome := parse(raw)
	if !outcome.OK() {
		o.logger.Warn("Response parsing failed",
			"task", string(task),
			"reason", outcome.Failure.Reason,
			"response_chars", len(raw))
	}
	return outcome
}
