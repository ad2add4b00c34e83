package report

import (
	"bytes"
	"solar-cleaning-service/internal/domain"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteEnergyWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteEnergyWorkbook(&buf, EnergyWorkbook{
		Profile: domain.SystemProfile{Location: "Rajasthan, India", CapacityKW: 1000},
		Series: []domain.EnergyDay{
			{Date: "2026-04-14", PredictedKWh: 4300.5, ActualKWh: 4200.1, Irradiance: 5.06, SoilingLossPercent: 2.3, CapacityFactor: 17.5},
			{Date: "2026-04-15", PredictedKWh: 4400, ActualKWh: 4400, Irradiance: 5.18, SoilingLossPercent: 0, CapacityFactor: 18.3},
		},
		ROI: &domain.ROIResult{DustLevel: domain.DustMedium, PaybackReachable: false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	checks := []struct {
		sheet, cell, want string
	}{
		{EnergySheet, "A1", "Date"},
		{EnergySheet, "F1", "Capacity factor %"},
		{EnergySheet, "A2", "2026-04-14"},
		{EnergySheet, "C2", "4200.1"},
		{EnergySheet, "A3", "2026-04-15"},
		{SummarySheet, "A1", "Location"},
		{SummarySheet, "B1", "Rajasthan, India"},
		{SummarySheet, "B4", "medium"},
		{SummarySheet, "B7", "never"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("%s!%s: %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Fatalf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}
}

func TestWriteEnergyWorkbookWithoutSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEnergyWorkbook(&buf, EnergyWorkbook{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(SummarySheet); idx != -1 {
		t.Fatalf("summary sheet index = %d, want absent", idx)
	}
}
