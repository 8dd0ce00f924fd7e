package ai

import (
	"context"
	"crypto/rand"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"resumelens/internal/config"
	resumelensErrors "resumelens/internal/errors"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// taskRuntime bundles what one analysis task needs to call the model: its
// resolved configuration, its own client (tasks may carry distinct API keys)
// and its circuit breaker.
type taskRuntime struct {
	cfg     config.OperationAIConfig
	client  *genai.Client
	breaker *AICircuitBreaker
}

// GeminiProvider implements Gateway against the Google Gemini API
type GeminiProvider struct {
	tasks   map[types.AnalysisTask]*taskRuntime
	limiter *rate.Limiter
	logger  *resumelensErrors.Logger
}

// Ensure GeminiProvider implements Gateway
var _ Gateway = (*GeminiProvider)(nil)

// NewGeminiProvider creates a gateway with one runtime per analysis task.
func NewGeminiProvider(cfg *config.Config, logger *resumelensErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()

	tasks := make(map[types.AnalysisTask]*taskRuntime, len(types.AllTasks()))
	for _, task := range types.AllTasks() {
		taskCfg := cfg.GetTaskConfig(task)
		if taskCfg.APIKey == "" {
			return nil, resumelensErrors.NewConfigError(resumelensErrors.ErrCodeMissingAPIKey,
				fmt.Sprintf("No API key configured for task %s", task), nil)
		}
		if taskCfg.Provider != "gemini" {
			return nil, resumelensErrors.NewConfigError(resumelensErrors.ErrCodeInvalidConfig,
				fmt.Sprintf("Unsupported AI provider for task %s: %s", task, taskCfg.Provider), nil)
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: taskCfg.APIKey,
		})
		if err != nil {
			return nil, resumelensErrors.NewAIError(resumelensErrors.ErrCodeAIUnavailable,
				"Failed to create Gemini client", err)
		}

		tasks[task] = &taskRuntime{
			cfg:     taskCfg,
			client:  client,
			breaker: NewAICircuitBreaker(task, &taskCfg, logger),
		}
	}

	var limiter *rate.Limiter
	if cfg.AI.RateLimit.Enabled {
		perSecond := rate.Limit(float64(cfg.AI.RateLimit.RequestsPerMin) / 60.0)
		limiter = rate.NewLimiter(perSecond, cfg.AI.RateLimit.BurstCapacity)
	}

	return &GeminiProvider{
		tasks:   tasks,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Complete sends a prompt to the model configured for the task and returns
// the raw response text. Transient failures are retried with backoff up to
// the task's bound; exhaustion surfaces an AI_UNAVAILABLE error carrying the
// last underlying cause.
func (g *GeminiProvider) Complete(ctx context.Context, task types.AnalysisTask, prompt string) (string, error) {
	rt, ok := g.tasks[task]
	if !ok {
		return "", resumelensErrors.NewInternalError(resumelensErrors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unknown analysis task: %s", task), nil)
	}

	tracer := otel.Tracer("resumelens.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.task", string(task)),
		attribute.String("ai.model", rt.cfg.Model),
		attribute.Int("ai.prompt_length", len(prompt)),
	)

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return "", resumelensErrors.NewAIError(resumelensErrors.ErrCodeAIUnavailable,
				"Rate limiter wait aborted", err)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, *rt.cfg.Timeout)
	defer cancel()

	genaiConfig := &genai.GenerateContentConfig{}
	if *rt.cfg.Temperature > 0 {
		genaiConfig.Temperature = rt.cfg.Temperature
	}
	if system := SystemPrompt(task); system != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := rt.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(callCtx, rt, task, func() (*genai.GenerateContentResponse, error) {
			return rt.client.Models.GenerateContent(callCtx, rt.cfg.Model, genai.Text(prompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", resumelensErrors.NewAIError(resumelensErrors.ErrCodeAIUnavailable,
			fmt.Sprintf("AI service unavailable for task %s", task), err)
	}

	text := result.Text()
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("ai.response_length", len(text)),
	)
	if usage := result.UsageMetadata; usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", int64(usage.PromptTokenCount)),
			attribute.Int64("ai.tokens.output", int64(usage.CandidatesTokenCount)),
			attribute.Int64("ai.tokens.total", int64(usage.TotalTokenCount)),
		)
	}

	return text, nil
}

// executeWithRetry executes an AI call with retry logic and exponential backoff
func (g *GeminiProvider) executeWithRetry(ctx context.Context, rt *taskRuntime, task types.AnalysisTask, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= *rt.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying AI call",
				"task", string(task),
				"attempt", attempt,
				"max_retries", *rt.cfg.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("AI call succeeded after retry",
					"task", string(task),
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"task", string(task),
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "AI call failed after all retry attempts",
		"task", string(task),
		"total_attempts", *rt.cfg.MaxRetries+1)

	return nil, fmt.Errorf("task %s failed after %d retries: %w", task, *rt.cfg.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		// Timeouts and connection errors are both worth retrying
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// BreakerStats returns per-task circuit breaker statistics
func (g *GeminiProvider) BreakerStats() map[string]any {
	stats := make(map[string]any, len(g.tasks))
	healthy := true
	for task, rt := range g.tasks {
		stats[string(task)] = rt.breaker.GetStats()
		healthy = healthy && rt.breaker.IsHealthy()
	}
	stats["overall_healthy"] = healthy
	return stats
}

// Close implements Gateway
func (g *GeminiProvider) Close() error {
	// The genai client holds no resources needing explicit release in
	// single-shot usage
	return nil
}
