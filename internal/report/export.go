// Package report serializes an analysis result into its two user-facing
// artifacts: a canonical machine-readable export and a paginated PDF.
package report

import (
	"encoding/json"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// Export serializes an AnalysisResult into canonical indented JSON. The
// output is byte-identical for identical input: struct fields keep
// declaration order, map keys are sorted by encoding/json, and the timestamp
// is carried as-is.
func Export(result *types.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeRenderFailed,
			"Failed to serialize analysis result", err)
	}
	return append(data, '\n'), nil
}
