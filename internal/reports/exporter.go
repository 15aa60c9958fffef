package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a computed report as a downloadable file.
type Exporter interface {
	Export(format string, report *Report) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

func (e *exporter) Export(format string, report *Report) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")
	rows := reportRows(report)
	title := reportTitle(report.Type)

	switch format {
	case FormatExcel:
		data, err := e.exportExcel(title, rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("%s_report_%s.xlsx", report.Type, timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("%s_report_%s.csv", report.Type, timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportPDF(title, rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("%s_report_%s.pdf", report.Type, timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func reportTitle(reportType string) string {
	switch reportType {
	case ReportTypeIncome:
		return "Income Report"
	case ReportTypeExpenses:
		return "Expenses Report"
	case ReportTypeOccupancy:
		return "Occupancy Report"
	default:
		return "Overview Report"
	}
}

// reportRows flattens a report into label/value rows shared by all three
// output formats.
func reportRows(report *Report) [][]string {
	rows := [][]string{{"Label", "Value"}}

	appendSeries := func(points []SeriesPoint, pick func(SeriesPoint) float64) {
		for _, p := range points {
			rows = append(rows, []string{p.Label, fmt.Sprintf("%.2f", pick(p))})
		}
	}

	switch report.Type {
	case ReportTypeIncome:
		rows = append(rows, []string{"Total", fmt.Sprintf("%.2f", report.Income.Total)})
		appendSeries(report.Income.Data, func(p SeriesPoint) float64 { return p.Revenue })
	case ReportTypeExpenses:
		rows = append(rows, []string{"Total", fmt.Sprintf("%.2f", report.Expenses.Total)})
		appendSeries(report.Expenses.Data, func(p SeriesPoint) float64 { return p.Expenses })
		for _, c := range report.Expenses.ByCategory {
			rows = append(rows, []string{"Category: " + c.Category, fmt.Sprintf("%.2f", c.Total)})
		}
	case ReportTypeOccupancy:
		rows = append(rows, []string{"Rate (%)", fmt.Sprintf("%.2f", report.Occupancy.Rate)})
		rows = append(rows, []string{"Total Units", fmt.Sprintf("%d", report.Occupancy.TotalUnits)})
		rows = append(rows, []string{"Occupied Units", fmt.Sprintf("%d", report.Occupancy.OccupiedUnits)})
	case ReportTypeOverview:
		o := report.Overview
		rows = append(rows, []string{"Net Profit", fmt.Sprintf("%.2f", o.NetProfit)})
		rows = append(rows, []string{"Income Total", fmt.Sprintf("%.2f", o.Income.Total)})
		rows = append(rows, []string{"Expenses Total", fmt.Sprintf("%.2f", o.Expenses.Total)})
		rows = append(rows, []string{"Occupancy Rate (%)", fmt.Sprintf("%.2f", o.Occupancy.Rate)})
	}
	return rows
}

func (e *exporter) exportCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for _, record := range rows {
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportExcel(title string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	sheet := title
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for rIdx, record := range rows {
		for cIdx, value := range record {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+1)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *exporter) exportPDF(title string, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)

	widths := []float64{90, 60}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range rows[0] {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, record := range rows[1:] {
		pdf.CellFormat(widths[0], 6, record[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, record[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
