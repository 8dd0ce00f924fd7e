package common

import (
	"fmt"
	"strings"

	"resumelens/internal/errors"
)

// ValidateOutputFormat checks the requested format against the supported list
func ValidateOutputFormat(format string, supported []string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("Unsupported output format '%s' (supported: %s)",
			format, strings.Join(supported, ", ")), nil)
}
