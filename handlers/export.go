package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
)

var financialHeaders = []string{
	"Job Number", "Client", "Date", "Status", "Pricing Model",
	"Estimated Total", "Actual Total", "Paid", "Payment Method", "Profit",
}

func financialRow(j models.Job) []interface{} {
	profit := finance.JobProfit(j)
	var profitCell interface{}
	if profit.Computed {
		profitCell = profit.Profit
	} else {
		profitCell = ""
	}
	return []interface{}{
		j.JobNumber,
		j.ClientName,
		j.JobDate.Time().Format("2006-01-02"),
		j.Status,
		j.PricingModel,
		j.EstimatedTotal,
		j.ActualTotal,
		j.IsPaid,
		j.PaymentMethod,
		profitCell,
	}
}

// ExportFinancials downloads the financial report for a date range as an
// Excel workbook, or CSV with ?format=csv. Numeric cells stay numeric so
// the spreadsheet can keep computing on them.
func ExportFinancials(w http.ResponseWriter, r *http.Request) {
	jobs, leads, entries, err := rangedCollections(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	metrics := finance.Compute(jobs, leads, entries)

	if r.URL.Query().Get("format") == "csv" {
		data, err := financialsCSV(jobs, metrics)
		if err != nil {
			http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
			return
		}
		sendDownload(w, data, "financials", "csv", "text/csv")
		return
	}

	f, err := financialsWorkbook(jobs, metrics)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}
	sendDownload(w, buf.Bytes(), "financials", "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func financialsWorkbook(jobs []models.Job, metrics finance.Metrics) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Financials"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	f.SetCellValue(sheet, "A1", "Financial Report")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.SetRowHeight(sheet, 1, 30)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for col, header := range financialHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 4)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 5
	for _, j := range jobs {
		for col, value := range financialRow(j) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
		row++
	}

	// Summary block under the table.
	row += 2
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	summary := []struct {
		label string
		value interface{}
	}{
		{"Paid Revenue", metrics.PaidRevenue},
		{"Unpaid Revenue", metrics.UnpaidRevenue},
		{"Lead Cost", metrics.TotalLeadCost},
		{"Payroll Cost", metrics.PayrollCost},
		{"Gross Profit", metrics.GrossProfit},
		{"Profit Margin %", metrics.ProfitMargin},
		{"Conversion Rate %", metrics.ConversionRate},
		{"Average Job Value", metrics.AverageJobValue},
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheet, cell, "Summary")
	f.SetCellStyle(sheet, cell, cell, boldStyle)
	row++
	for _, s := range summary {
		keyCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheet, keyCell, s.label)
		f.SetCellValue(sheet, valueCell, s.value)
		row++
	}
	return f, nil
}

func financialsCSV(jobs []models.Job, metrics finance.Metrics) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(financialHeaders); err != nil {
		return nil, err
	}
	for _, j := range jobs {
		record := make([]string, 0, len(financialHeaders))
		for _, value := range financialRow(j) {
			record = append(record, csvString(value))
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Write([]string{})
	writer.Write([]string{"Paid Revenue", csvString(metrics.PaidRevenue)})
	writer.Write([]string{"Unpaid Revenue", csvString(metrics.UnpaidRevenue)})
	writer.Write([]string{"Lead Cost", csvString(metrics.TotalLeadCost)})
	writer.Write([]string{"Payroll Cost", csvString(metrics.PayrollCost)})
	writer.Write([]string{"Gross Profit", csvString(metrics.GrossProfit)})
	writer.Write([]string{"Profit Margin %", csvString(metrics.ProfitMargin)})

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// ExportPayroll downloads the payroll sheet for a date range as an Excel
// workbook: one row per time entry with the derived pay breakdown.
func ExportPayroll(w http.ResponseWriter, r *http.Request) {
	_, _, entries, err := rangedCollections(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	names := employeeNames(entries)

	f := excelize.NewFile()
	const sheet = "Payroll"
	index, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headers := []string{
		"Employee", "Date", "Regular Hours", "Overtime Hours",
		"Hourly Rate", "Overtime Rate", "Tip", "Total Pay", "Status", "Paid",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	var total float64
	for _, e := range entries {
		values := []interface{}{
			names[e.EmployeeID.String()],
			e.EntryDate.Time().Format("2006-01-02"),
			e.RegularHours,
			e.OvertimeHours,
			e.HourlyRate,
			finance.OvertimeRate(e),
			e.TipAmount,
			finance.TotalPay(e),
			e.Status,
			e.IsPaid,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, value)
		}
		if e.IsPaid {
			total += finance.TotalPay(e)
		}
		row++
	}

	row++
	labelCell, _ := excelize.CoordinatesToCellName(7, row)
	totalCell, _ := excelize.CoordinatesToCellName(8, row)
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellValue(sheet, labelCell, "Paid Total")
	f.SetCellValue(sheet, totalCell, total)
	f.SetCellStyle(sheet, labelCell, totalCell, boldStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}
	sendDownload(w, buf.Bytes(), "payroll", "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func employeeNames(entries []models.TimeEntry) map[string]string {
	names := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Employee != nil {
			names[e.EmployeeID.String()] = e.Employee.Name
		} else {
			names[e.EmployeeID.String()] = e.EmployeeID.String()
		}
	}
	return names
}

func sendDownload(w http.ResponseWriter, data []byte, name, ext, contentType string) {
	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().Format("20060102_150405"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func csvString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
