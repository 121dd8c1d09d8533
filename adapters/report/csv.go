// Package report contains the output collaborators: CSV, xlsx and console
// renderings of simulation results. The engine guarantees valid numbers;
// everything about formatting and destinations lives here.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"absim/domain/sim"
	"absim/internal/errors"
	"absim/ports"
)

// csvHeader is the stable column order; rows follow sweep input order
var csvHeader = []string{
	"n_per_group", "alpha", "trials",
	"type1_mean", "power_mean",
	"type1_conversion", "power_conversion",
	"type1_ratio", "power_ratio",
}

// CSVWriter writes sweep rows to a CSV file, creating parent directories
type CSVWriter struct {
	Path string
}

var _ ports.ReportPort = (*CSVWriter)(nil)

// NewCSVWriter creates a CSV writer targeting path
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{Path: path}
}

// WriteSweep writes one row per successful sweep row in input order.
// Failed rows carry no estimates and are skipped.
func (w *CSVWriter) WriteSweep(result *sim.SweepResult) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return errors.ReportError(err, "creating output directory for %s", w.Path)
	}

	f, err := os.Create(w.Path)
	if err != nil {
		return errors.ReportError(err, "creating %s", w.Path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return errors.ReportError(err, "writing CSV header")
	}
	for _, row := range result.Rows {
		if row.Failed() {
			continue
		}
		record := []string{
			strconv.Itoa(row.NPerGroup),
			formatFloat(row.Alpha),
			strconv.Itoa(row.Trials),
			formatFloat(row.Type1Mean.RejectionRate),
			formatFloat(row.PowerMean.RejectionRate),
			formatFloat(row.Type1Conversion.RejectionRate),
			formatFloat(row.PowerConversion.RejectionRate),
			formatFloat(row.Type1Ratio.RejectionRate),
			formatFloat(row.PowerRatio.RejectionRate),
		}
		if err := cw.Write(record); err != nil {
			return errors.ReportError(err, "writing CSV row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.ReportError(err, "flushing %s", w.Path)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
