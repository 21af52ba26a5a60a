package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"chemviz/internal/dao"
)

const (
	Title            = "Chemical Equipment Visualizer"
	EmptyHistoryText = "No files uploaded yet."
	AnalyzeLabel     = "Analyze"
	BusyLabel        = "Uploading..."
	DownloadLabel    = "Download PDF Report"
	RefreshLabel     = "Refresh History"
	HistoryTitle     = "Upload History (Last 5)"
	TableTitle       = "Raw Data (First 50 Rows)"
	missingValue     = "-"
	uploadedAtLayout = "2006-01-02 15:04:05"
)

// Column binds a table header to the row key it reads.
type Column struct {
	Header string
	Key    string
}

// TableColumns are the raw data columns shown for an analysis.
var TableColumns = []Column{
	{Header: "Equipment Name", Key: "Equipment Name"},
	{Header: "Type", Key: "Type"},
	{Header: "Flowrate", Key: "Flowrate"},
	{Header: "Pressure", Key: "Pressure"},
	{Header: "Temp", Key: "Temperature"},
}

var HistoryHeaders = []string{"Date", "File Name", "Total Rows", "Avg Flowrate", "Avg Pressure", "Avg Temp"}

// ButtonLabel is the analyze control's label for the given loading flag.
func ButtonLabel(loading bool) string {
	if loading {
		return BusyLabel
	}
	return AnalyzeLabel
}

// FormatAverage renders a history statistic: "-" when absent or zero,
// otherwise two decimals.
func FormatAverage(v *float64) string {
	if v == nil || *v == 0 {
		return missingValue
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func FormatCount(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FileName is the last path segment of a stored upload path.
func FileName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func FormatUploadedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(uploadedAtLayout)
}

func UploadedAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// FormatNumber renders a summary statistic the way the backend rounded it.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CellText renders one table cell. Missing keys and nulls are empty.
func CellText(row *dao.Row, key string) string {
	if row == nil {
		return ""
	}
	v, ok := row.Get(key)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
