// Package common holds the shared plumbing between CLI commands: reading
// input documents, validating options, and delivering formatted output.
package common

import (
	"fmt"
	"os"
	"path/filepath"

	"resumelens/internal/config"
	"resumelens/internal/document"
	"resumelens/internal/errors"
	"resumelens/internal/utils"
)

// FileProcessor reads resume documents off disk with size and format checks
// applied before any byte reaches the pipeline.
type FileProcessor struct {
	cfg    *config.Config
	logger *errors.Logger
}

// NewFileProcessor creates a file processor
func NewFileProcessor(cfg *config.Config, logger *errors.Logger) *FileProcessor {
	return &FileProcessor{cfg: cfg, logger: logger}
}

// ReadDocument loads the file at path into a SourceDocument. The format is
// detected from the extension; unsupported extensions and oversized files are
// rejected before reading content.
func (fp *FileProcessor) ReadDocument(path string) (document.SourceDocument, error) {
	var doc document.SourceDocument

	if err := utils.ValidateInputFile(path); err != nil {
		return doc, err
	}

	format, err := document.DetectFormat(path)
	if err != nil {
		return doc, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return doc, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to stat file: %s", path), err)
	}
	if fp.cfg.App.MaxFileSize > 0 && info.Size() > fp.cfg.App.MaxFileSize {
		return doc, errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("File %s exceeds the maximum size of %s",
				filepath.Base(path), utils.FormatFileSize(fp.cfg.App.MaxFileSize)), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Failed to read file: %s", path), err)
	}

	fp.logger.Debug("Document loaded",
		"path", path,
		"format", string(format),
		"bytes", len(data))

	return document.SourceDocument{Format: format, Data: data}, nil
}
