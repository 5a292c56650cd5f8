package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/beamdocs/docharvest/internal/compare"
)

// Service renders evaluation reports as XLSX bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// EvaluationXLSX returns an XLSX workbook (as bytes) for an evaluation
// report: one row per scored file plus an average row.
func (s *Service) EvaluationXLSX(report compare.Report) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Evaluation"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"File ID",
		"Dataset",
		"File",
		"Accuracy (%)",
		"Mismatches",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, fr := range report.Files {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, fr.FileID)
		write(2, string(fr.Dataset))
		write(3, fr.File)
		write(4, fr.Accuracy)
		write(5, countMismatches(fr.Mismatches))
		row++
	}

	// summary row
	row++
	avgLabel, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetCellValue(sheet, avgLabel, "Average Accuracy")
	avgCell, _ := excelize.CoordinatesToCellName(4, row)
	_ = f.SetCellValue(sheet, avgCell, report.AverageAccuracy)

	for _, id := range report.UnmatchedCandidates {
		row++
		c1, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheet, c1, id)
		c2, _ := excelize.CoordinatesToCellName(5, row)
		_ = f.SetCellValue(sheet, c2, "no reference record")
	}
	for _, id := range report.UnmatchedReferences {
		row++
		c1, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheet, c1, id)
		c2, _ := excelize.CoordinatesToCellName(5, row)
		_ = f.SetCellValue(sheet, c2, "no candidate record")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	s.logger.Info("export.evaluation_xlsx",
		"files", len(report.Files),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// countMismatches counts leaf discrepancies, descending nested entries.
func countMismatches(mismatches []compare.Mismatch) int {
	n := 0
	for _, m := range mismatches {
		if len(m.Nested) > 0 {
			n += countMismatches(m.Nested)
		} else {
			n++
		}
	}
	return n
}
