package report

import (
	"fmt"
	"os"
	"path/filepath"

	"absim/domain/sim"
	"absim/internal/errors"
	"absim/ports"

	"github.com/xuri/excelize/v2"
)

const sweepSheet = "Sweep"

// ExcelWriter writes sweep rows to an xlsx workbook. Alongside the rejection
// rates it includes the Wilson bounds, which do not fit the flat CSV layout.
type ExcelWriter struct {
	Path string
}

var _ ports.ReportPort = (*ExcelWriter)(nil)

// NewExcelWriter creates an xlsx writer targeting path
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{Path: path}
}

// WriteSweep writes the workbook: one header row plus one row per
// successful sweep row in input order.
func (w *ExcelWriter) WriteSweep(result *sim.SweepResult) error {
	if err := os.MkdirAll(filepath.Dir(w.Path), 0o755); err != nil {
		return errors.ReportError(err, "creating output directory for %s", w.Path)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sweepSheet)
	if err != nil {
		return errors.ReportError(err, "creating sweep sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.ReportError(err, "removing default sheet")
	}

	header := []interface{}{
		"n_per_group", "alpha", "trials",
		"type1_mean", "type1_mean_low", "type1_mean_high",
		"power_mean", "power_mean_low", "power_mean_high",
		"type1_conversion", "type1_conversion_low", "type1_conversion_high",
		"power_conversion", "power_conversion_low", "power_conversion_high",
		"type1_ratio", "type1_ratio_low", "type1_ratio_high",
		"power_ratio", "power_ratio_low", "power_ratio_high",
	}
	if err := f.SetSheetRow(sweepSheet, "A1", &header); err != nil {
		return errors.ReportError(err, "writing header row")
	}

	line := 2
	for _, row := range result.Rows {
		if row.Failed() {
			continue
		}
		cells := []interface{}{row.NPerGroup, row.Alpha, row.Trials}
		for _, est := range []sim.EstimationResult{
			row.Type1Mean, row.PowerMean,
			row.Type1Conversion, row.PowerConversion,
			row.Type1Ratio, row.PowerRatio,
		} {
			cells = append(cells, est.RejectionRate, est.Interval.Low, est.Interval.High)
		}
		if err := f.SetSheetRow(sweepSheet, fmt.Sprintf("A%d", line), &cells); err != nil {
			return errors.ReportError(err, "writing row %d", line)
		}
		line++
	}

	if err := f.SaveAs(w.Path); err != nil {
		return errors.ReportError(err, "saving %s", w.Path)
	}
	return nil
}
