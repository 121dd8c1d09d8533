package report

import (
	"fmt"
	"io"

	"absim/app"
	"absim/domain/sim"
	"absim/internal/errors"
)

// TextWriter renders the quick calibration report for the console
type TextWriter struct {
	Out io.Writer
}

// NewTextWriter creates a console report writer
func NewTextWriter(out io.Writer) *TextWriter {
	return &TextWriter{Out: out}
}

// WriteReport prints the three-metric calibration summary
func (w *TextWriter) WriteReport(summary *app.ReportSummary) error {
	var err error
	p := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w.Out, format+"\n", args...)
	}

	p("Experimentation Simulation Report")
	p("--------------------------------")
	p("Under no effect: rejection rate approximates Type I error.")
	p("Under a real effect: rejection rate approximates power.")
	p("alpha=%.3g trials=%d", summary.Alpha, summary.Trials)
	p("")

	sections := []struct {
		title  string
		metric app.MetricReport
	}{
		{"Mean metric (normal data)", summary.Mean},
		{"Conversion metric (Bernoulli)", summary.Conversion},
		{"Ratio metric (revenue per visitor)", summary.Ratio},
	}
	for _, section := range sections {
		p("%s, n=%d per group", section.title, section.metric.NPerGroup)
		p("  Type I error: %s", formatEstimate(section.metric.Type1))
		p("  Power:        %s", formatEstimate(section.metric.Power))
		p("")
	}

	if err != nil {
		return errors.ReportError(err, "writing report")
	}
	return nil
}

func formatEstimate(est sim.EstimationResult) string {
	return fmt.Sprintf("%.3f [%.3f, %.3f]", est.RejectionRate, est.Interval.Low, est.Interval.High)
}
