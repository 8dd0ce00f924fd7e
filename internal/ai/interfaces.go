package ai

import (
	"context"

	"resumelens/internal/types"
)

// Gateway is the boundary to the external text-completion capability. It is
// a pure text-in/text-out interface: the response string is returned exactly
// as produced, with no interpretation, so implementations are substitutable
// with stubs in tests. Retry, throttling and timeout policy live behind it.
type Gateway interface {
	Complete(ctx context.Context, task types.AnalysisTask, prompt string) (string, error)
	Close() error
}
