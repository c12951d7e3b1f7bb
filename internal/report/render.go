package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// WriteText prints the four summary lines shown after an analysis
func WriteText(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Determined Reaction Order: %d\nSlope value: %.4f\nRate constant k = %.4e\nR² = %.4f\n",
		s.Order, s.Slope, s.RateConstant, s.RSquared)
	return err
}

// Markdown renders the summary, the candidate table and the raw-data overview
func Markdown(s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "- **Determined Reaction Order:** %d\n", s.Order)
	fmt.Fprintf(&b, "- **Slope:** %.4f\n", s.Slope)
	fmt.Fprintf(&b, "- **Intercept:** %.4f\n", s.Intercept)
	fmt.Fprintf(&b, "- **Rate constant k:** %.4e\n", s.RateConstant)
	fmt.Fprintf(&b, "- **R²:** %.4f\n", s.RSquared)
	fmt.Fprintf(&b, "- **Slope p-value:** %.3g\n\n", s.PValue)

	b.WriteString("## Candidate orders\n\n")
	b.WriteString("| Order | y axis | R² | Slope | Note |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, c := range s.Candidates {
		if c.Viable {
			note := ""
			if c.Order == s.Order {
				note = "selected"
			}
			fmt.Fprintf(&b, "| %d | %s | %.4f | %.4g | %s |\n", c.Order, escapeCell(c.YLabel), c.RSquared, c.Slope, note)
			continue
		}
		fmt.Fprintf(&b, "| %d | - | - | - | skipped: %s |\n", c.Order, escapeCell(c.Reason))
	}

	b.WriteString("\n## Data\n\n")
	fmt.Fprintf(&b, "%d points, t = %.4g to %.4g s, [A]₀ = %.4g M, mean [A] = %.4g M (sd %.4g)\n",
		s.Data.Points, s.Data.TimeMin, s.Data.TimeMax, s.Data.ConcentrationC0, s.Data.ConcentrationMn, s.Data.ConcentrationSd)

	return b.String()
}

// HTML renders the markdown report to an HTML fragment
func HTML(s Summary) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(Markdown(s)))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.Render(doc, renderer)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
