package dao

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TypeDistribution maps an equipment type to its occurrence count, in the
// order the backend listed the types.
type TypeDistribution = orderedmap.OrderedMap[string, int]

// Row is one raw CSV record as echoed by the backend, columns kept in order.
type Row = orderedmap.OrderedMap[string, any]

func NewTypeDistribution() *TypeDistribution {
	return orderedmap.New[string, int]()
}

func NewRow() *Row {
	return orderedmap.New[string, any]()
}

// Summary aggregate statistics of one uploaded CSV
type Summary struct {
	TotalCount     int     `json:"total_count"`
	AvgFlowrate    float64 `json:"avg_flowrate"`
	AvgPressure    float64 `json:"avg_pressure"`
	AvgTemperature float64 `json:"avg_temperature"`
}

// AnalysisResult response of POST upload/
type AnalysisResult struct {
	Id               int64             `json:"id"`
	Message          string            `json:"message,omitempty"`
	Summary          Summary           `json:"summary"`
	TypeDistribution *TypeDistribution `json:"type_distribution"`
	// TableData holds at most the first 50 rows
	TableData []*Row `json:"table_data"`
}

// HistoryRecord one entry of GET history/. Statistics are null while the
// backend has not finished computing them.
type HistoryRecord struct {
	Id             int64     `json:"id"`
	UploadedAt     Timestamp `json:"uploaded_at" swaggertype:"string" format:"date-time"`
	File           string    `json:"file"`
	TotalCount     *int      `json:"total_count"`
	AvgFlowrate    *float64  `json:"avg_flowrate"`
	AvgPressure    *float64  `json:"avg_pressure"`
	AvgTemperature *float64  `json:"avg_temperature"`
}

// ErrorResponse error body returned by the backend
type ErrorResponse struct {
	Error  string `json:"error,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// AnalysisEvent is published after an upload result has been applied.
type AnalysisEvent struct {
	Id               int64             `json:"id"`
	File             string            `json:"file"`
	Summary          Summary           `json:"summary"`
	TypeDistribution *TypeDistribution `json:"type_distribution,omitempty"`
	AnalyzedAt       string            `json:"analyzed_at"`
}
