package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/types"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer produces the human-readable report document. Rendering is pure
// and deterministic apart from document metadata; the section layout is
// fixed regardless of which tasks succeeded.
type PDFRenderer struct {
	cfg config.ReportConfig
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewPDFRenderer creates a renderer with the given report configuration
func NewPDFRenderer(cfg config.ReportConfig) *PDFRenderer {
	return &PDFRenderer{cfg: cfg}
}

// Render serializes an AnalysisResult into a paginated PDF. Every section is
// always present: failed tasks render an explicit "unavailable" block
// instead of being silently omitted.
func (r *PDFRenderer) Render(result *types.AnalysisResult) ([]byte, error) {
	r.pdf = fpdf.New("P", "mm", r.cfg.PageSize, "")
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")

	r.pdf.SetTitle(r.cfg.Title, true)
	r.pdf.SetAutoPageBreak(true, 20)
	r.pdf.SetFooterFunc(func() {
		r.pdf.SetY(-15)
		r.pdf.SetFont(r.cfg.Font, "I", 8)
		r.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", r.pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	r.pdf.AddPage()

	r.title(r.cfg.Title)
	r.line(fmt.Sprintf("Generated: %s", result.GeneratedAt.Format(time.RFC3339)))
	r.pdf.Ln(6)

	r.renderFeedback(result.Feedback)
	r.renderStructured(result.Structured)
	r.renderAts(result.Ats)

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeRenderFailed,
			"Failed to render PDF report", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderFeedback(outcome types.TaskOutcome[types.FeedbackRecord]) {
	r.sectionTitle("Resume Feedback")
	if !outcome.OK() {
		r.unavailable(outcome.Failure)
		return
	}
	fb := outcome.Value

	r.subheading(fmt.Sprintf("Quality Score: %d/100", fb.QualityScore))
	r.bulletSection("Sections Present", fb.SectionsPresent)
	r.bulletSection("Sections Missing", fb.SectionsMissing)

	if len(fb.SkillsSentiment) > 0 {
		r.subheading("Skills Sentiment")
		skills := make([]string, 0, len(fb.SkillsSentiment))
		for skill := range fb.SkillsSentiment {
			skills = append(skills, skill)
		}
		sort.Strings(skills)
		for _, skill := range skills {
			s := fb.SkillsSentiment[skill]
			r.bullet(fmt.Sprintf("%s: confidence %s, specificity %s", skill, s.Confidence, s.Specificity))
		}
		r.pdf.Ln(3)
	}
	if fb.SkillsSummary != "" {
		r.subheading("Skills Summary")
		r.line(fb.SkillsSummary)
		r.pdf.Ln(3)
	}

	r.bulletSection("Strengths", fb.Strengths)
	r.bulletSection("Improvement Suggestions", fb.Suggestions)
}

func (r *PDFRenderer) renderStructured(outcome types.TaskOutcome[types.StructuredResume]) {
	r.sectionTitle("Structured Resume")
	if !outcome.OK() {
		r.unavailable(outcome.Failure)
		return
	}
	sr := outcome.Value

	if name := sr.Personal.Name; name != "" {
		r.subheading(name)
	}
	contact := joinNonEmpty(sr.Personal.Email, sr.Personal.Phone, sr.Personal.Location, sr.Personal.LinkedIn)
	if contact != "" {
		r.line(contact)
		r.pdf.Ln(3)
	}
	if sr.Summary != "" {
		r.subheading("Summary")
		r.line(sr.Summary)
		r.pdf.Ln(3)
	}

	if len(sr.Experience) > 0 {
		r.subheading("Experience")
		for _, e := range sr.Experience {
			r.bullet(joinNonEmpty(e.Title, e.Company, e.Duration))
			for _, d := range e.Details {
				r.indentedLine(d)
			}
		}
		r.pdf.Ln(3)
	}

	if len(sr.Education) > 0 {
		r.subheading("Education")
		for _, e := range sr.Education {
			r.bullet(joinNonEmpty(e.Degree, e.Institution, e.Year))
			if e.Details != "" {
				r.indentedLine(e.Details)
			}
		}
		r.pdf.Ln(3)
	}

	r.bulletSection("Skills", sr.Skills)

	if len(sr.Projects) > 0 {
		r.subheading("Projects")
		for _, p := range sr.Projects {
			r.bullet(p.Name)
			if p.Description != "" {
				r.indentedLine(p.Description)
			}
			if len(p.Technologies) > 0 {
				r.indentedLine("Technologies: " + joinNonEmpty(p.Technologies...))
			}
		}
		r.pdf.Ln(3)
	}

	r.bulletSection("Certifications", sr.Certifications)
}

func (r *PDFRenderer) renderAts(outcome types.TaskOutcome[types.AtsJargonReport]) {
	r.sectionTitle("ATS & Jargon Analysis")
	if !outcome.OK() {
		r.unavailable(outcome.Failure)
		return
	}
	ats := outcome.Value

	r.bulletSection("ATS Recommendations", ats.AtsRecommendations)

	if len(ats.JargonFlags) > 0 {
		r.subheading("Jargon & Filler Phrases")
		for _, flag := range ats.JargonFlags {
			r.bullet(fmt.Sprintf("%q - %s", flag.Phrase, flag.Reason))
		}
		r.pdf.Ln(3)
	}

	r.bulletSection("Keyword Suggestions", ats.KeywordSuggestions)
	r.bulletSection("Formatting Issues", ats.FormattingIssues)
}

func (r *PDFRenderer) title(text string) {
	r.pdf.SetFont(r.cfg.Font, "B", 22)
	r.pdf.CellFormat(0, 14, r.tr(text), "", 1, "C", false, 0, "")
	r.pdf.Ln(2)
}

func (r *PDFRenderer) sectionTitle(text string) {
	r.pdf.SetFont(r.cfg.Font, "B", 15)
	r.pdf.CellFormat(0, 10, r.tr(text), "B", 1, "L", false, 0, "")
	r.pdf.Ln(3)
}

func (r *PDFRenderer) subheading(text string) {
	r.pdf.SetFont(r.cfg.Font, "B", 11)
	r.pdf.MultiCell(0, 6, r.tr(text), "", "L", false)
	r.pdf.Ln(1)
}

func (r *PDFRenderer) line(text string) {
	r.pdf.SetFont(r.cfg.Font, "", 10)
	r.pdf.MultiCell(0, 5, r.tr(text), "", "L", false)
}

func (r *PDFRenderer) bullet(text string) {
	r.pdf.SetFont(r.cfg.Font, "", 10)
	r.pdf.SetX(r.pdf.GetX() + 4)
	r.pdf.MultiCell(0, 5, r.tr("- "+text), "", "L", false)
}

func (r *PDFRenderer) indentedLine(text string) {
	r.pdf.SetFont(r.cfg.Font, "", 9)
	r.pdf.SetX(r.pdf.GetX() + 10)
	r.pdf.MultiCell(0, 5, r.tr(text), "", "L", false)
}

func (r *PDFRenderer) bulletSection(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	r.subheading(heading)
	for _, item := range items {
		r.bullet(item)
	}
	r.pdf.Ln(3)
}

// unavailable renders the placeholder block for a failed task; the section
// stays in the layout so a reader never sees a silently missing analysis.
func (r *PDFRenderer) unavailable(failure *types.TaskFailure) {
	reason := "task did not run"
	if failure != nil {
		reason = failure.Reason
	}
	r.pdf.SetFont(r.cfg.Font, "I", 10)
	r.pdf.MultiCell(0, 5, r.tr(fmt.Sprintf("Analysis unavailable: %s", reason)), "", "L", false)
	r.pdf.Ln(6)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " | "
		}
		out += p
	}
	return out
}
