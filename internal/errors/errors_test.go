package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := NewDocumentError(ErrCodeEmptyDocument, "Document contains no extractable text", cause)

	if err.Type != ErrorTypeDocument {
		t.Errorf("Type = %q, want %q", err.Type, ErrorTypeDocument)
	}
	if got := err.Error(); got != "EMPTY_DOCUMENT: Document contains no extractable text (caused by: underlying failure)" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := NewAIError(ErrCodeAIUnavailable, "AI service unavailable", nil)
	if got := err.Error(); got != "AI_UNAVAILABLE: AI service unavailable" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWithContext(t *testing.T) {
	err := NewValidationError(ErrCodeInvalidFormat, "bad format", nil).
		WithContext("format", "xml").
		WithContext("supported", []string{"json", "text"})

	if err.Context["format"] != "xml" {
		t.Errorf("Context = %v", err.Context)
	}
}

func TestHasCode(t *testing.T) {
	err := NewDocumentError(ErrCodeUnsupportedFormat, "unsupported", nil)

	if !HasCode(err, ErrCodeUnsupportedFormat) {
		t.Error("HasCode should match the error's code")
	}
	if HasCode(err, ErrCodeEmptyDocument) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeEmptyDocument) {
		t.Error("HasCode should reject non-AppError values")
	}
	if HasCode(nil, ErrCodeEmptyDocument) {
		t.Error("HasCode should reject nil")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if _, err := New(level); err != nil {
			t.Errorf("New(%q) error: %v", level, err)
		}
	}
	if _, err := New("verbose"); err == nil {
		t.Error("New should reject unknown levels")
	}
}
