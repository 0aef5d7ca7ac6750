package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vbagdi/ResearchCode/domain"
)

// Analysis thresholds.
var (
	RecallExcellent    = 0.8
	RecallGood         = 0.6
	PrecisionExcellent = 0.8
	PrecisionGood      = 0.5

	NovelListLimit = 10
)

// Verdict grades a metric against its thresholds.
type Verdict string

const (
	Excellent Verdict = "EXCELLENT"
	Good      Verdict = "GOOD"
	NeedsWork Verdict = "NEEDS WORK"
)

func grade(value float64, excellent float64, good float64) Verdict {
	switch {
	case value >= excellent:
		return Excellent
	case value >= good:
		return Good
	default:
		return NeedsWork
	}
}

func RecallVerdict(m domain.ValidationMetrics) Verdict {
	return grade(m.Recall, RecallExcellent, RecallGood)
}

func PrecisionVerdict(m domain.ValidationMetrics) Verdict {
	return grade(m.PrecisionAtK, PrecisionExcellent, PrecisionGood)
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// PrintReport renders the human readable validation report.  tools is the
// ranked discovered list the metrics were computed from.
func PrintReport(w io.Writer, m domain.ValidationMetrics, tools []*domain.Candidate) {
	var (
		cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
		green  = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
		red    = color.New(color.FgRed).SprintFunc()
		rule   = strings.Repeat("=", 70)
	)
	verdictColor := func(v Verdict) func(...interface{}) string {
		switch v {
		case Excellent:
			return green
		case Good:
			return yellow
		default:
			return red
		}
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, cyan("VALIDATION REPORT"))
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\nDiscovery Summary:\n")
	fmt.Fprintf(w, "  Total tools discovered: %v\n", m.TotalDiscovered)
	fmt.Fprintf(w, "  Reference size: %v\n", m.ReferenceSize)

	fmt.Fprintf(w, "\nPerformance Metrics:\n")
	fmt.Fprintf(w, "  Recall: %v (%v/%v reference tools found)\n", percent(m.Recall), m.FoundCount, m.ReferenceSize)
	fmt.Fprintf(w, "  Precision@%v: %v (%v/%v top results are reference tools)\n", m.TopK, percent(m.PrecisionAtK), int(m.PrecisionAtK*float64(m.TopK)+0.5), m.TopK)

	if len(m.FoundTools) > 0 {
		fmt.Fprintf(w, "\nFound Reference Tools (%v):\n", len(m.FoundTools))
		for _, name := range m.FoundTools {
			if c := lookup(tools, name); c != nil {
				fmt.Fprintf(w, "  %v %-20s (score: %v, stars: %v)\n", green("+"), name, c.Score(), starsText(c))
			}
		}
	}

	if len(m.MissedTools) > 0 {
		fmt.Fprintf(w, "\nMissed Reference Tools (%v):\n", len(m.MissedTools))
		for _, name := range m.MissedTools {
			fmt.Fprintf(w, "  %v %v\n", red("-"), name)
		}
	}

	if len(m.NovelTopK) > 0 {
		fmt.Fprintf(w, "\nNovel Discoveries in Top %v (%v):\n", m.TopK, len(m.NovelTopK))
		top := head(tools, m.TopK)
		for i, name := range m.NovelTopK {
			if i >= NovelListLimit {
				break
			}
			if c := lookup(top, name); c != nil {
				fmt.Fprintf(w, "  * %-20s (score: %v, stars: %v)\n", c.Name, c.Score(), starsText(c))
			}
		}
	}

	fmt.Fprintf(w, "\nAnalysis:\n")
	rv := RecallVerdict(m)
	switch rv {
	case Excellent:
		fmt.Fprintf(w, "  %v: High recall (%v) - finding most important tools\n", verdictColor(rv)(rv), percent(m.Recall))
	case Good:
		fmt.Fprintf(w, "  %v: Moderate recall (%v) - missing some key tools\n", verdictColor(rv)(rv), percent(m.Recall))
	default:
		fmt.Fprintf(w, "  %v: Low recall (%v) - missing many key tools\n", verdictColor(rv)(rv), percent(m.Recall))
	}
	pv := PrecisionVerdict(m)
	switch pv {
	case Excellent:
		fmt.Fprintf(w, "  %v: High precision@%v (%v) - top results are high quality\n", verdictColor(pv)(pv), m.TopK, percent(m.PrecisionAtK))
	case Good:
		fmt.Fprintf(w, "  %v: Moderate precision@%v (%v)\n", verdictColor(pv)(pv), m.TopK, percent(m.PrecisionAtK))
	default:
		fmt.Fprintf(w, "  %v: Low precision@%v (%v)\n", verdictColor(pv)(pv), m.TopK, percent(m.PrecisionAtK))
	}

	fmt.Fprintf(w, "\n%v\n", rule)
}

func lookup(tools []*domain.Candidate, normalized string) *domain.Candidate {
	for _, c := range tools {
		if domain.NormalizeValidation(c.Name) == normalized {
			return c
		}
	}
	return nil
}

func starsText(c *domain.Candidate) string {
	if c.Stars == nil {
		return "N/A"
	}
	return fmt.Sprint(*c.Stars)
}
