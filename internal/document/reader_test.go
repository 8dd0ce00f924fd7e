package document

import (
	"strings"
	"testing"

	"resumelens/internal/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"resume.pdf", FormatPDF, false},
		{"Resume.PDF", FormatPDF, false},
		{"resume.docx", FormatDOCX, false},
		{"resume.txt", FormatText, false},
		{"resume.text", FormatText, false},
		{"archive/resume.v2.txt", FormatText, false},
		{"resume.doc", "", true},
		{"resume.rtf", "", true},
		{"resume", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := DetectFormat(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DetectFormat(%q) expected error, got %q", tt.filename, got)
				}
				if !errors.HasCode(err, errors.ErrCodeUnsupportedFormat) {
					t.Errorf("error = %v, want code %s", err, errors.ErrCodeUnsupportedFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("DetectFormat(%q) error: %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "plain text passes through",
			data: "Jane Doe\nSoftware Engineer",
			want: "Jane Doe\nSoftware Engineer",
		},
		{
			name: "CRLF line endings are normalized",
			data: "Jane Doe\r\nSoftware Engineer\r\n",
			want: "Jane Doe\nSoftware Engineer",
		},
		{
			name: "trailing whitespace is stripped per line",
			data: "Jane Doe   \nSoftware Engineer\t\n",
			want: "Jane Doe\nSoftware Engineer",
		},
		{
			name: "blank line runs collapse to one",
			data: "Experience\n\n\n\nEducation",
			want: "Experience\n\nEducation",
		},
		{
			name: "surrounding whitespace is trimmed",
			data: "\n\n  Jane Doe\n\n",
			want: "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(SourceDocument{Format: FormatText, Data: []byte(tt.data)})
			if err != nil {
				t.Fatalf("Extract error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Extract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"zero bytes", nil},
		{"whitespace only", []byte(" \r\n \t \n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(SourceDocument{Format: FormatText, Data: tt.data})
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.HasCode(err, errors.ErrCodeEmptyDocument) {
				t.Errorf("error = %v, want code %s", err, errors.ErrCodeEmptyDocument)
			}
		})
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract(SourceDocument{Format: "rtf", Data: []byte("{\\rtf1 hello}")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.HasCode(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeUnsupportedFormat)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract(SourceDocument{Format: FormatPDF, Data: []byte("this is not a pdf")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.HasCode(err, errors.ErrCodeExtractionFailed) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeExtractionFailed)
	}
}

func TestExtractCorruptDOCX(t *testing.T) {
	_, err := Extract(SourceDocument{Format: FormatDOCX, Data: []byte("this is not a zip archive")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.HasCode(err, errors.ErrCodeExtractionFailed) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeExtractionFailed)
	}
}

func TestFlattenDocxXML(t *testing.T) {
	raw := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Software </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got := flattenDocxXML(raw)
	if !strings.Contains(got, "Jane Doe\n") {
		t.Errorf("paragraph end should become a newline, got %q", got)
	}
	if !strings.Contains(got, "Software Engineer") {
		t.Errorf("runs within one paragraph should join without breaks, got %q", got)
	}
}
