package shape

import "golang.org/x/text/unicode/bidi"

// Run is a directional run of rune indices [Start, End).
type Run struct {
	Start, End int
	RTL        bool
}

// Runs splits text into directional runs in visual order. Text that the
// bidi algorithm cannot order is returned as a single left-to-right run.
func Runs(text string) []Run {
	n := len([]rune(text))
	if n == 0 {
		return nil
	}
	whole := []Run{{Start: 0, End: n}}

	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return whole
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return whole
	}

	runs := make([]Run, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		r := ordering.Run(i)
		start, end := r.Pos()
		if end >= n {
			end = n - 1
		}
		if start > end {
			continue
		}
		runs = append(runs, Run{Start: start, End: end + 1, RTL: r.Direction() == bidi.RightToLeft})
	}
	if len(runs) == 0 {
		return whole
	}
	return runs
}
