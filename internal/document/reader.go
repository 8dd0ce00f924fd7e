// Package document normalizes uploaded resume files into plain text.
package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"resumelens/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is the declared format of an uploaded document
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "txt"
)

// SourceDocument is an uploaded file plus its declared format. It is consumed
// exactly once by Extract and discarded afterwards.
type SourceDocument struct {
	Format Format
	Data   []byte
}

// DetectFormat maps a file name to a document format using its extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filename)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx:]
	} else {
		ext = ""
	}

	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text":
		return FormatText, nil
	}

	return "", errors.NewDocumentError(errors.ErrCodeUnsupportedFormat,
		fmt.Sprintf("Unsupported document format for file: %s (expected .pdf, .docx or .txt)", filename), nil)
}

// Extract converts a source document into normalized plain text. It fails
// with UNSUPPORTED_FORMAT for unknown formats and EMPTY_DOCUMENT when the
// extracted text is empty or whitespace-only. Extraction is deterministic
// and local; there are no retries.
func Extract(doc SourceDocument) (string, error) {
	var text string
	var err error

	switch doc.Format {
	case FormatPDF:
		text, err = extractPDF(doc.Data)
	case FormatDOCX:
		text, err = extractDOCX(doc.Data)
	case FormatText:
		text = string(doc.Data)
	default:
		return "", errors.NewDocumentError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported document format: %q", doc.Format), nil)
	}

	if err != nil {
		return "", errors.NewDocumentError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Failed to extract text from %s document", doc.Format), err)
	}

	text = normalizeText(text)
	if text == "" {
		return "", errors.NewDocumentError(errors.ErrCodeEmptyDocument,
			"Document contains no extractable text", nil)
	}

	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not lose the rest of the document
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	// GetContent returns the raw word/document.xml markup; paragraph breaks
	// live in the tags, not the character data.
	return flattenDocxXML(doc.Editable().GetContent()), nil
}

// flattenDocxXML walks document.xml tokens, keeping character data and
// turning paragraph/line-break elements into newlines.
func flattenDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
			}
		}
	}
	return sb.String()
}

// normalizeText canonicalizes line endings, strips trailing whitespace per
// line and collapses runs of blank lines so paragraph boundaries survive as
// single line breaks.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	var out []string
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blankRun = 0
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
