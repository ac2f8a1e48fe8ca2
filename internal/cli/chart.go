package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dmitrijs2005/markbook/internal/models"
	"github.com/dmitrijs2005/markbook/internal/report"
)

// barWidth is the length of a full-scale bar in characters.
const barWidth = 40

func bar(value, full float64) string {
	if full <= 0 || value <= 0 {
		return ""
	}
	n := int(math.Round(value / full * barWidth))
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("#", n)
}

// renderReport draws the average bars, the marks per subject and the
// distribution with percentages.
func renderReport(w io.Writer, r *report.Report) {
	fmt.Fprintln(w, "Average Marks Per Subject")
	for _, p := range r.Average {
		fmt.Fprintf(w, "  %-5s %-*s %6.1f\n", p.Subject, barWidth, bar(p.Value, models.MaxScore), p.Value)
	}

	fmt.Fprintln(w, "Marks Per Subject")
	for _, p := range r.Raw {
		fmt.Fprintf(w, "  %-5s %s\n", p.Subject, joinInts(p.Scores))
	}

	fmt.Fprintln(w, "Marks Distribution")
	for _, p := range r.Distribution {
		fmt.Fprintf(w, "  %-5s %-*s %5.1f%% (%d)\n", p.Subject, barWidth, bar(p.Share, 1), p.Share*100, p.Total)
	}
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, " ")
}
