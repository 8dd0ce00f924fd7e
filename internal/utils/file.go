// Package utils provides small filesystem helpers shared across the CLI.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resumelens/internal/errors"
)

// ValidateInputFile checks that path exists and is a regular readable file
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return errors.NewIOError(errors.ErrCodeFileNotFound,
			fmt.Sprintf("File not found: %s", path), err)
	}
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot access file: %s", path), err)
	}
	if info.IsDir() {
		return errors.NewValidationError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Path is a directory, not a file: %s", path), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("File is not readable: %s", path), err)
	}
	f.Close()

	return nil
}

// ValidateOutputFile checks that path's parent directory exists and is writable
func ValidateOutputFile(path string) error {
	if path == "" {
		return errors.NewValidationError(errors.ErrCodeFileNotWritable,
			"Output path is empty", nil)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return errors.NewIOError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Output directory does not exist: %s", dir), err)
	}
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Cannot access output directory: %s", dir), err)
	}
	if !info.IsDir() {
		return errors.NewValidationError(errors.ErrCodeFileNotWritable,
			fmt.Sprintf("Output parent is not a directory: %s", dir), nil)
	}

	return nil
}

// GetFileExtension returns the lowercase extension of path without the dot
func GetFileExtension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FormatFileSize renders a byte count in human-readable units
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
