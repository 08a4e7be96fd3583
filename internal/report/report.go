package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-analyzer/internal/domain"
)

// Filename es el nombre fijo del adjunto descargable.
const Filename = "resume-analysis-report.pdf"

// Umbrales verticales (mm) del heurístico de paginación.
const (
	topMargin      = 20.0
	itemBreakY     = 270.0
	sectionBreakY  = 240.0
	leftMargin     = 20.0
	contentWidth   = 170.0
	charsPerLine   = 70
	lineHeight     = 5.0
	scoreBarWidth  = 100.0
	scoreBarHeight = 5.0
	markerRadius   = 1.5
)

// RGB es un color de relleno o texto.
type RGB struct {
	R, G, B int
}

var tierColors = map[domain.ScoreTier]RGB{
	domain.TierRed:    {239, 68, 68},
	domain.TierYellow: {234, 179, 8},
	domain.TierBlue:   {59, 130, 246},
	domain.TierGreen:  {34, 197, 94},
}

// ScoreColor devuelve el color de barra para un puntaje.
func ScoreColor(score int) RGB {
	return tierColors[domain.ScoreTierFor(score)]
}

var issueColors = map[string]RGB{
	domain.IssuePositive: tierColors[domain.TierGreen],
	domain.IssueWarning:  tierColors[domain.TierYellow],
	domain.IssueError:    tierColors[domain.TierRed],
}

type recommendationStyle struct {
	title string
	glyph string
	color RGB
}

var recommendationGroups = []struct {
	kind  string
	style recommendationStyle
}{
	{domain.RecommendationStrength, recommendationStyle{"Strengths", "+", tierColors[domain.TierGreen]}},
	{domain.RecommendationImprovement, recommendationStyle{"Areas to Improve", "!", RGB{249, 115, 22}}},
	{domain.RecommendationNextStep, recommendationStyle{"Next Steps", ">", tierColors[domain.TierBlue]}},
}

var (
	textDark  = RGB{31, 41, 55}
	textMuted = RGB{107, 114, 128}
	barTrack  = RGB{229, 231, 235}
	bandFill  = RGB{238, 242, 255}
)

// Render escribe el PDF del análisis en w.
func Render(resp domain.AnalysisResponse, w io.Writer) error {
	doc := build(resp, time.Now())
	return doc.Output(w)
}

// RenderBytes devuelve el PDF completo en memoria.
func RenderBytes(resp domain.AnalysisResponse) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(resp, &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func build(resp domain.AnalysisResponse, now time.Time) *fpdf.Fpdf {
	resp.Normalize()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Resume Analysis Report", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), y: topMargin}

	w.header(now)
	w.targetBand(resp)
	w.scores(resp)
	w.badges(resp.EarnedBadges)
	w.grammar(resp.GrammarFeedback)
	w.ats(resp.ATSFeedback)
	w.keywords(resp.KeywordFeedback)
	w.recommendations(resp.Recommendations)
	w.footer()
	return pdf
}

// wrapHeight estima el alto de un bloque de texto por cantidad de caracteres.
func wrapHeight(text string) float64 {
	return 10 + float64(len(text)/charsPerLine)*lineHeight
}

func (w *writer) breakIfBelow(limit float64) {
	if w.y > limit {
		w.pdf.AddPage()
		w.y = topMargin
	}
}

func (w *writer) setText(c RGB) { w.pdf.SetTextColor(c.R, c.G, c.B) }
func (w *writer) setFill(c RGB) { w.pdf.SetFillColor(c.R, c.G, c.B) }

func (w *writer) section(title string) {
	w.breakIfBelow(sectionBreakY)
	w.y += 5
	w.pdf.SetFont("Helvetica", "B", 14)
	w.setText(textDark)
	w.pdf.Text(leftMargin, w.y, w.tr(title))
	w.y += 8
}

// paragraph escribe texto envuelto a contentWidth desde x y avanza según el heurístico.
func (w *writer) paragraph(x float64, text string) {
	w.breakIfBelow(itemBreakY)
	w.pdf.SetFont("Helvetica", "", 10)
	lines := w.pdf.SplitText(w.tr(text), contentWidth-(x-leftMargin))
	for i, line := range lines {
		w.pdf.Text(x, w.y+float64(i)*lineHeight, line)
	}
	w.y += wrapHeight(text)
}

func (w *writer) header(now time.Time) {
	w.pdf.SetFont("Helvetica", "B", 22)
	w.setText(textDark)
	w.pdf.Text(leftMargin, w.y, "Resume Analysis Report")
	w.y += 8
	w.pdf.SetFont("Helvetica", "", 10)
	w.setText(textMuted)
	w.pdf.Text(leftMargin, w.y, "Generated on "+now.Format("January 2, 2006"))
	w.y += 10
}

func (w *writer) targetBand(resp domain.AnalysisResponse) {
	w.setFill(bandFill)
	w.pdf.Rect(leftMargin-5, w.y-6, contentWidth+10, 18, "F")
	w.pdf.SetFont("Helvetica", "B", 12)
	w.setText(textDark)
	role := domain.FormatJobRole(resp.JobRole, resp.CustomJobRole)
	w.pdf.Text(leftMargin, w.y, w.tr("Target Position: "+role))
	w.pdf.SetFont("Helvetica", "", 10)
	level := resp.ExperienceLevel
	if level == "" {
		level = "-"
	}
	w.pdf.Text(leftMargin, w.y+7, w.tr("Experience Level: "+level+"   |   Overall Level: "+resp.Level))
	w.y += 20
}

func (w *writer) scores(resp domain.AnalysisResponse) {
	w.section("Scores")
	rows := []struct {
		label string
		score int
	}{
		{"Overall", resp.OverallScore},
		{"Grammar", resp.GrammarScore},
		{"ATS Compatibility", resp.ATSScore},
		{"Keywords", resp.KeywordScore},
		{"Format", resp.FormatScore},
	}
	for _, row := range rows {
		w.breakIfBelow(itemBreakY)
		w.pdf.SetFont("Helvetica", "", 10)
		w.setText(textDark)
		w.pdf.Text(leftMargin, w.y, row.label)

		barX := leftMargin + 45
		w.setFill(barTrack)
		w.pdf.Rect(barX, w.y-4, scoreBarWidth, scoreBarHeight, "F")
		w.setFill(ScoreColor(row.score))
		filled := scoreBarWidth * float64(domain.ClampScore(row.score)) / 100
		if filled > 0 {
			w.pdf.Rect(barX, w.y-4, filled, scoreBarHeight, "F")
		}
		w.pdf.Text(barX+scoreBarWidth+5, w.y, strconv.Itoa(row.score)+"/100")
		w.y += 10
	}
}

func (w *writer) badges(badges []domain.Badge) {
	w.section("Earned Badges")
	if len(badges) == 0 {
		w.setText(textMuted)
		w.paragraph(leftMargin, "No badges earned yet.")
		return
	}
	w.setText(textDark)
	for _, b := range badges {
		w.bullet(tierColors[domain.TierBlue], "*", b.Name)
	}
}

func (w *writer) bullet(c RGB, glyph, text string) {
	w.breakIfBelow(itemBreakY)
	w.setFill(c)
	w.pdf.Circle(leftMargin+markerRadius, w.y-1.5, markerRadius, "F")
	w.pdf.SetFont("Helvetica", "B", 10)
	w.setText(c)
	w.pdf.Text(leftMargin+5, w.y, glyph)
	w.setText(textDark)
	w.paragraph(leftMargin+10, text)
}

func (w *writer) grammar(fb domain.GrammarFeedback) {
	w.section("Grammar & Readability")
	for _, issue := range fb.Issues {
		c, ok := issueColors[issue.Type]
		if !ok {
			c = textMuted
		}
		w.bullet(c, issueGlyph(issue.Type), issue.Text)
	}
	if strings.TrimSpace(fb.ReadabilityComment) != "" {
		w.setText(textMuted)
		w.paragraph(leftMargin, fb.ReadabilityComment)
	}
}

func issueGlyph(kind string) string {
	switch kind {
	case domain.IssuePositive:
		return "+"
	case domain.IssueError:
		return "x"
	default:
		return "!"
	}
}

func (w *writer) ats(fb domain.ATSFeedback) {
	w.section("ATS Compatibility")
	for _, s := range fb.Sections {
		if s.Found {
			w.bullet(tierColors[domain.TierGreen], "v", s.Name+" (found)")
		} else {
			w.bullet(tierColors[domain.TierRed], "x", s.Name+" (missing)")
		}
	}
	for _, r := range fb.Recommendations {
		w.bullet(tierColors[domain.TierBlue], "-", r)
	}
}

func (w *writer) keywords(fb domain.KeywordFeedback) {
	w.section("Keywords")
	w.setText(textDark)
	w.paragraph(leftMargin, "Found: "+joinOrNone(fb.FoundKeywords))
	w.paragraph(leftMargin, "Missing: "+joinOrNone(fb.MissingKeywords))
	if strings.TrimSpace(fb.Recommendation) != "" {
		w.setText(textMuted)
		w.paragraph(leftMargin, fb.Recommendation)
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func (w *writer) recommendations(recs []domain.Recommendation) {
	w.section("Recommendations")
	for _, group := range recommendationGroups {
		var items []string
		for _, r := range recs {
			if r.Type == group.kind {
				items = append(items, r.Text)
			}
		}
		if len(items) == 0 {
			continue
		}
		w.breakIfBelow(sectionBreakY)
		w.pdf.SetFont("Helvetica", "B", 11)
		w.setText(group.style.color)
		w.pdf.Text(leftMargin, w.y, group.style.title)
		w.y += 7
		for _, text := range items {
			w.bullet(group.style.color, group.style.glyph, text)
		}
	}
}

func (w *writer) footer() {
	w.breakIfBelow(itemBreakY)
	w.pdf.SetFont("Helvetica", "I", 8)
	w.setText(textMuted)
	w.pdf.Text(leftMargin, 287, "Generated by Resume Analyzer. Scores are AI-generated estimates.")
}
