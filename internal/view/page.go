package view

import (
	"chemviz/internal/chart"
	"chemviz/internal/dashboard"
)

type Card struct {
	Title string
	Value string
}

type Slice struct {
	Label string
	Count int
	Color string
}

type HistoryRow struct {
	Id             int64
	Date           string
	Ago            string
	FileName       string
	TotalRows      string
	AvgFlowrate    string
	AvgPressure    string
	AvgTemperature string
}

// Page is everything a rendering of the dashboard needs, derived from one
// State snapshot.
type Page struct {
	Title        string
	ButtonLabel  string
	Busy         bool
	CanExport    bool
	Error        string
	SelectedFile string

	HasAnalysis  bool
	AnalysisId   int64
	Cards        []Card
	Distribution []Slice
	ChartData    chart.Data
	Columns      []Column
	Rows         [][]string

	HistoryTitle string
	HistoryEmpty bool
	EmptyHistory string
	History      []HistoryRow
}

func NewPage(s dashboard.State) Page {
	p := Page{
		Title:        Title,
		ButtonLabel:  ButtonLabel(s.Loading),
		Busy:         s.Loading,
		CanExport:    s.CanExport(),
		Error:        s.Error,
		Columns:      TableColumns,
		HistoryTitle: HistoryTitle,
		HistoryEmpty: len(s.History) == 0,
		EmptyHistory: EmptyHistoryText,
	}
	if s.File != nil {
		p.SelectedFile = s.File.Name
	}

	if a := s.Analysis; a != nil {
		p.HasAnalysis = true
		p.AnalysisId = a.Id
		p.Cards = []Card{
			{Title: "Total Count", Value: FormatNumber(float64(a.Summary.TotalCount))},
			{Title: "Avg Flowrate", Value: FormatNumber(a.Summary.AvgFlowrate)},
			{Title: "Avg Pressure", Value: FormatNumber(a.Summary.AvgPressure)},
			{Title: "Avg Temperature", Value: FormatNumber(a.Summary.AvgTemperature)},
		}

		p.ChartData = chart.FromDistribution(a.TypeDistribution)
		for i, label := range p.ChartData.Labels {
			p.Distribution = append(p.Distribution, Slice{
				Label: label,
				Count: p.ChartData.Values[i],
				Color: p.ChartData.Colors[i],
			})
		}

		for _, row := range a.TableData {
			cells := make([]string, len(TableColumns))
			for i, col := range TableColumns {
				cells[i] = CellText(row, col.Key)
			}
			p.Rows = append(p.Rows, cells)
		}
	}

	for _, r := range s.History {
		p.History = append(p.History, HistoryRow{
			Id:             r.Id,
			Date:           FormatUploadedAt(r.UploadedAt.Time),
			Ago:            UploadedAgo(r.UploadedAt.Time),
			FileName:       FileName(r.File),
			TotalRows:      FormatCount(r.TotalCount),
			AvgFlowrate:    FormatAverage(r.AvgFlowrate),
			AvgPressure:    FormatAverage(r.AvgPressure),
			AvgTemperature: FormatAverage(r.AvgTemperature),
		})
	}
	return p
}
