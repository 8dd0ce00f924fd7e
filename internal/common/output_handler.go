package common

import (
	"fmt"
	"os"

	"resumelens/internal/errors"
	"resumelens/internal/utils"
)

// OutputHandler delivers formatted results either to stdout or to a file
type OutputHandler struct {
	logger *errors.Logger
}

// NewOutputHandler creates an output handler
func NewOutputHandler(logger *errors.Logger) *OutputHandler {
	return &OutputHandler{logger: logger}
}

// Deliver writes content to the given path, or to stdout when path is empty
func (oh *OutputHandler) Deliver(content string, path string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	return oh.WriteFile([]byte(content), path)
}

// WriteFile writes raw bytes to path, validating the destination first
func (oh *OutputHandler) WriteFile(data []byte, path string) error {
	if err := utils.ValidateOutputFile(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Failed to write output file: %s", path), err)
	}

	oh.logger.Info("Output written", "path", path, "bytes", len(data))
	return nil
}
