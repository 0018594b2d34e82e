package http

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	compliance "fueleu-maritime/internal/compliance/domain"
)

func sampleBalances() []*compliance.AdjustedBalance {
	return []*compliance.AdjustedBalance{
		{ShipID: "R001", Year: 2024, OriginalCB: 263082240, BankedAvailable: 0, AdjustedCB: 263082240, IsSurplus: true},
		{ShipID: "R003", Year: 2024, OriginalCB: -500000, BankedAvailable: 100000, AdjustedCB: -400000, IsSurplus: false},
	}
}

func TestBuildCompliancePDF(t *testing.T) {
	out, err := BuildCompliancePDF(2024, sampleBalances())
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", out[:min(8, len(out))])
	}
}

func TestBuildComplianceXLSX(t *testing.T) {
	out, err := BuildComplianceXLSX(2024, sampleBalances())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	ship, err := f.GetCellValue("ships", "A2")
	if err != nil {
		t.Fatalf("read ships!A2: %v", err)
	}
	if ship != "R001" {
		t.Fatalf("ships!A2 = %q, want R001", ship)
	}
	count, err := f.GetCellValue("summary", "B5")
	if err != nil {
		t.Fatalf("read summary!B5: %v", err)
	}
	if count != "2" {
		t.Fatalf("summary!B5 = %q, want 2", count)
	}
}

func TestBuildComplianceXLSXEmpty(t *testing.T) {
	out, err := BuildComplianceXLSX(2024, nil)
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty workbook output")
	}
}
