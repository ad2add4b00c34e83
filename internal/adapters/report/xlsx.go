package report

import (
	"fmt"
	"io"
	"solar-cleaning-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	EnergySheet  = "Energy"
	SummarySheet = "Summary"
)

var energyHeaders = []string{
	"Date",
	"Predicted kWh",
	"Actual kWh",
	"Irradiance kWh/m2",
	"Soiling loss %",
	"Capacity factor %",
}

// EnergyWorkbook describes the contents of an exported generation report.
// ROI and Frequency are optional; the summary sheet is written only when one is set.
type EnergyWorkbook struct {
	Profile   domain.SystemProfile
	Series    []domain.EnergyDay
	ROI       *domain.ROIResult
	Frequency *domain.CleaningFrequency
}

// WriteEnergyWorkbook renders the workbook as XLSX to w.
func WriteEnergyWorkbook(w io.Writer, wb EnergyWorkbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", EnergySheet); err != nil {
		return fmt.Errorf("energy workbook: rename sheet: %w", err)
	}
	if err := writeSeries(f, wb.Series); err != nil {
		return fmt.Errorf("energy workbook: %w", err)
	}

	if wb.ROI != nil || wb.Frequency != nil {
		if _, err := f.NewSheet(SummarySheet); err != nil {
			return fmt.Errorf("energy workbook: add summary sheet: %w", err)
		}
		if err := writeSummary(f, wb); err != nil {
			return fmt.Errorf("energy workbook: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("energy workbook: write: %w", err)
	}
	return nil
}

func writeSeries(f *excelize.File, series []domain.EnergyDay) error {
	for i, h := range energyHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(EnergySheet, cell, h); err != nil {
			return fmt.Errorf("write header %q: %w", h, err)
		}
	}

	for i, d := range series {
		row := i + 2
		values := []any{d.Date, d.PredictedKWh, d.ActualKWh, d.Irradiance, d.SoilingLossPercent, d.CapacityFactor}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(EnergySheet, cell, v); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writeSummary(f *excelize.File, wb EnergyWorkbook) error {
	rows := [][2]any{
		{"Location", wb.Profile.Location},
		{"Capacity kW", wb.Profile.CapacityKW},
	}
	if r := wb.ROI; r != nil {
		payback := any("never")
		if r.PaybackReachable {
			payback = r.PaybackPeriodDays
		}
		rows = append(rows,
			[2]any{"Soiling loss %", r.SoilingLossPercent},
			[2]any{"Dust level", string(r.DustLevel)},
			[2]any{"Energy recovered kWh/day", r.EnergyRecovered},
			[2]any{"Revenue recovered /day", r.RevenueRecovered},
			[2]any{"Payback days", payback},
			[2]any{"Monthly ROI %", r.ROIPercent},
		)
	}
	if fr := wb.Frequency; fr != nil {
		rows = append(rows,
			[2]any{"Optimal interval days", fr.OptimalDays},
			[2]any{"Cleanings per year", fr.CleaningsPerYear},
			[2]any{"Annual savings", fr.AnnualSavings},
		)
	}

	for i, r := range rows {
		row := i + 1
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", row), r[0]); err != nil {
			return fmt.Errorf("write summary A%d: %w", row, err)
		}
		if err := f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", row), r[1]); err != nil {
			return fmt.Errorf("write summary B%d: %w", row, err)
		}
	}
	return nil
}
