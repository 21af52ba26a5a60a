package export

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"chemviz/internal/dao"
)

func reopen(t *testing.T, analysis *dao.AnalysisResult, history []dao.HistoryRecord) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, analysis, history); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	r, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("rows %s: %v", sheet, err)
	}
	return r
}

func TestWorkbook_Empty(t *testing.T) {
	f := reopen(t, nil, nil)

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{SheetSummary, SheetDistribution, SheetData, SheetHistory}) {
		t.Fatalf("unexpected sheets: %v", got)
	}
	for _, sheet := range f.GetSheetList() {
		if n := len(rows(t, f, sheet)); n != 1 {
			t.Errorf("%s: expected header only, got %d rows", sheet, n)
		}
	}
	if got := rows(t, f, SheetData)[0]; !reflect.DeepEqual(got, dataColumns) {
		t.Fatalf("unexpected data header: %v", got)
	}
}

func TestWorkbook_Analysis(t *testing.T) {
	dist := dao.NewTypeDistribution()
	dist.Set("Valve", 2)
	dist.Set("Pump", 1)

	first := dao.NewRow()
	first.Set("Type", "Valve")
	first.Set("Equipment Name", "V-1")
	first.Set("Flowrate", 10.5)
	second := dao.NewRow()
	second.Set("Equipment Name", "P-1")
	second.Set("Type", "Pump")

	a := &dao.AnalysisResult{
		Id:               3,
		Message:          "ok",
		Summary:          dao.Summary{TotalCount: 3, AvgFlowrate: 10.5},
		TypeDistribution: dist,
		TableData:        []*dao.Row{first, second},
	}
	total := 3
	avg := 1.25
	history := []dao.HistoryRecord{{
		Id:          3,
		UploadedAt:  dao.Timestamp{Time: time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)},
		File:        "csvs/plant.csv",
		TotalCount:  &total,
		AvgPressure: &avg,
	}}

	f := reopen(t, a, history)

	summary := rows(t, f, SheetSummary)
	if len(summary) != 7 || summary[1][1] != "3" || summary[3][1] != "3" {
		t.Fatalf("unexpected summary: %v", summary)
	}

	want := [][]string{{"Type", "Count"}, {"Valve", "2"}, {"Pump", "1"}}
	if got := rows(t, f, SheetDistribution); !reflect.DeepEqual(got, want) {
		t.Fatalf("distribution = %v, want %v", got, want)
	}

	data := rows(t, f, SheetData)
	if !reflect.DeepEqual(data[0], []string{"Type", "Equipment Name", "Flowrate"}) {
		t.Fatalf("columns must follow the first row: %v", data[0])
	}
	if !reflect.DeepEqual(data[2], []string{"Pump", "P-1"}) {
		t.Fatalf("unexpected second row: %v", data[2])
	}

	hist := rows(t, f, SheetHistory)
	if len(hist) != 2 {
		t.Fatalf("unexpected history rows: %v", hist)
	}
	if hist[1][1] != "2024-05-01 08:00:00" || hist[1][2] != "csvs/plant.csv" || hist[1][3] != "3" || hist[1][4] != "" || hist[1][5] != "1.25" {
		t.Fatalf("unexpected history row: %v", hist[1])
	}
}
