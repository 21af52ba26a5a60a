package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"chemviz/internal/dao"
)

const (
	SheetSummary      = "Summary"
	SheetDistribution = "Distribution"
	SheetData         = "Data"
	SheetHistory      = "History"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// dataColumns is the Data sheet header used when there are no rows to take
// the column order from.
var dataColumns = []string{"Equipment Name", "Type", "Flowrate", "Pressure", "Temperature"}

var historyColumns = []string{"ID", "Uploaded At", "File", "Total Rows", "Avg Flowrate", "Avg Pressure", "Avg Temperature"}

// Workbook builds a workbook of the analysis and the upload history. Either
// may be absent, in which case its sheets hold only their header row.
func Workbook(analysis *dao.AnalysisResult, history []dao.HistoryRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet failed: %w", err)
	}
	for _, name := range []string{SheetDistribution, SheetData, SheetHistory} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s failed: %w", name, err)
		}
	}

	steps := []func(*excelize.File) error{
		func(f *excelize.File) error { return fillSummary(f, analysis) },
		func(f *excelize.File) error { return fillDistribution(f, analysis) },
		func(f *excelize.File) error { return fillData(f, analysis) },
		func(f *excelize.File) error { return fillHistory(f, history) },
	}
	for _, step := range steps {
		if err := step(f); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, analysis *dao.AnalysisResult, history []dao.HistoryRecord) error {
	f, err := Workbook(analysis, history)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook failed: %w", err)
	}
	return nil
}

func fillSummary(f *excelize.File, a *dao.AnalysisResult) error {
	if err := setRow(f, SheetSummary, 1, "Field", "Value"); err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	rows := [][]any{
		{"Analysis ID", a.Id},
		{"Message", a.Message},
		{"Total Count", a.Summary.TotalCount},
		{"Avg Flowrate", a.Summary.AvgFlowrate},
		{"Avg Pressure", a.Summary.AvgPressure},
		{"Avg Temperature", a.Summary.AvgTemperature},
	}
	for i, r := range rows {
		if err := setRow(f, SheetSummary, i+2, r...); err != nil {
			return err
		}
	}
	return nil
}

func fillDistribution(f *excelize.File, a *dao.AnalysisResult) error {
	if err := setRow(f, SheetDistribution, 1, "Type", "Count"); err != nil {
		return err
	}
	if a == nil || a.TypeDistribution == nil {
		return nil
	}
	row := 2
	for pair := a.TypeDistribution.Oldest(); pair != nil; pair = pair.Next() {
		if err := setRow(f, SheetDistribution, row, pair.Key, pair.Value); err != nil {
			return err
		}
		row++
	}
	return nil
}

func fillData(f *excelize.File, a *dao.AnalysisResult) error {
	columns := dataColumns
	if a != nil && len(a.TableData) > 0 && a.TableData[0] != nil && a.TableData[0].Len() > 0 {
		columns = make([]string, 0, a.TableData[0].Len())
		for pair := a.TableData[0].Oldest(); pair != nil; pair = pair.Next() {
			columns = append(columns, pair.Key)
		}
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := setRow(f, SheetData, 1, header...); err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	for i, r := range a.TableData {
		cells := make([]any, len(columns))
		if r != nil {
			for j, c := range columns {
				cells[j], _ = r.Get(c)
			}
		}
		if err := setRow(f, SheetData, i+2, cells...); err != nil {
			return err
		}
	}
	return nil
}

func fillHistory(f *excelize.File, history []dao.HistoryRecord) error {
	header := make([]any, len(historyColumns))
	for i, c := range historyColumns {
		header[i] = c
	}
	if err := setRow(f, SheetHistory, 1, header...); err != nil {
		return err
	}
	for i, h := range history {
		uploaded := ""
		if !h.UploadedAt.IsZero() {
			uploaded = h.UploadedAt.Local().Format("2006-01-02 15:04:05")
		}
		err := setRow(f, SheetHistory, i+2,
			h.Id, uploaded, h.File, intValue(h.TotalCount),
			floatValue(h.AvgFlowrate), floatValue(h.AvgPressure), floatValue(h.AvgTemperature))
		if err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s!%s failed: %w", sheet, cell, err)
	}
	return nil
}

func intValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
