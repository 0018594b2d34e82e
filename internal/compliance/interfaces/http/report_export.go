package http

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	compliance "fueleu-maritime/internal/compliance/domain"
)

// BuildCompliancePDF renders a yearly compliance report as PDF.
func BuildCompliancePDF(year int, records []*compliance.AdjustedBalance) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "FuelEU Compliance Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Year: %d", year))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Target intensity: %.4f gCO2e/MJ", compliance.TargetIntensity(year)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Ships: %d", len(records)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(25, 6, "Ship", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "CB (gCO2e)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Banked available", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Adjusted CB", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Status", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, rec := range records {
		status := "deficit"
		if rec.IsSurplus {
			status = "surplus"
		}
		pdf.CellFormat(25, 6, rec.ShipID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", rec.OriginalCB), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", rec.BankedAvailable), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", rec.AdjustedCB), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, status, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildComplianceXLSX renders a yearly compliance report as XLSX.
func BuildComplianceXLSX(year int, records []*compliance.AdjustedBalance) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	shipsSheet := "ships"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(shipsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "FuelEU Compliance Report")
	_ = f.SetCellValue(summarySheet, "A3", "Year")
	_ = f.SetCellValue(summarySheet, "B3", year)
	_ = f.SetCellValue(summarySheet, "A4", "Target intensity (gCO2e/MJ)")
	_ = f.SetCellValue(summarySheet, "B4", compliance.TargetIntensity(year))
	_ = f.SetCellValue(summarySheet, "A5", "Ships")
	_ = f.SetCellValue(summarySheet, "B5", len(records))

	var totalCB, totalAdjusted float64
	for _, rec := range records {
		totalCB += rec.OriginalCB
		totalAdjusted += rec.AdjustedCB
	}
	_ = f.SetCellValue(summarySheet, "A6", "Fleet CB (gCO2e)")
	_ = f.SetCellValue(summarySheet, "B6", compliance.Round2(totalCB))
	_ = f.SetCellValue(summarySheet, "A7", "Fleet adjusted CB (gCO2e)")
	_ = f.SetCellValue(summarySheet, "B7", compliance.Round2(totalAdjusted))

	_ = f.SetCellValue(shipsSheet, "A1", "Ship")
	_ = f.SetCellValue(shipsSheet, "B1", "CB (gCO2e)")
	_ = f.SetCellValue(shipsSheet, "C1", "Banked available")
	_ = f.SetCellValue(shipsSheet, "D1", "Adjusted CB")
	_ = f.SetCellValue(shipsSheet, "E1", "Surplus")
	for i, rec := range records {
		row := i + 2
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("A%d", row), rec.ShipID)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("B%d", row), rec.OriginalCB)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("C%d", row), rec.BankedAvailable)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("D%d", row), rec.AdjustedCB)
		_ = f.SetCellValue(shipsSheet, fmt.Sprintf("E%d", row), rec.IsSurplus)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
