package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chemviz/internal/chart"
	"chemviz/internal/dashboard"
	"chemviz/internal/export"
	"chemviz/internal/sink"
	"chemviz/internal/view"
	"chemviz/pkg/log"
)

var (
	chartsDir    string
	saveReport   bool
	workbookPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.csv>",
	Short: "Upload a CSV file and print its analysis",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAnalyze(cmd.Context(), args[0])
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&chartsDir, "charts-dir", "", "Write pie.png and bar.png of the type distribution to this directory")
	analyzeCmd.Flags().BoolVar(&saveReport, "report", false, "Download the PDF report to the configured report sink")
	analyzeCmd.Flags().StringVar(&workbookPath, "xlsx", "", "Write the analysis and history as an XLSX workbook to this path")
}

func runAnalyze(ctx context.Context, path string) {
	if ctx == nil {
		ctx = context.Background()
	}
	conf := mustLoadConfig()

	file, err := dashboard.LocalFile(path)
	if err != nil {
		logrus.WithError(err).Fatalf("select %s", path)
	}

	dash, stopEvents := newDashboard(conf)
	defer stopEvents()

	dash.SelectFile(file)
	if err := dash.Analyze(ctx); err != nil {
		logrus.Fatal(dash.State().Error)
	}

	state := dash.State()
	page := view.NewPage(state)
	if err := view.RenderAnalysis(os.Stdout, page); err != nil {
		logrus.WithError(err).Fatal("render analysis")
	}
	os.Stdout.WriteString("\n")
	if err := view.RenderHistory(os.Stdout, page); err != nil {
		logrus.WithError(err).Fatal("render history")
	}

	if chartsDir != "" {
		writeCharts(ctx, chartsDir, page.ChartData)
	}

	if saveReport {
		saver, err := sink.New(conf.Report, log.Component("sink"))
		if err != nil {
			logrus.WithError(err).Fatal("new report sink")
		}
		if err := dash.DownloadReport(ctx, saver); err != nil {
			logrus.Fatal(dash.State().Error)
		}
	}

	if workbookPath != "" {
		f, err := export.Workbook(state.Analysis, state.History)
		if err != nil {
			logrus.WithError(err).Fatal("build workbook")
		}
		defer f.Close()
		if err := f.SaveAs(workbookPath); err != nil {
			logrus.WithError(err).Fatalf("save workbook %s", workbookPath)
		}
		logrus.Infof("workbook saved to %s", workbookPath)
	}
}

func writeCharts(ctx context.Context, dir string, data chart.Data) {
	renders := map[string]func(io.Writer, chart.Data) error{
		"pie.png": chart.RenderPie,
		"bar.png": chart.RenderBar,
	}
	out := sink.NewDir(dir, log.Component("charts"))
	for name, render := range renders {
		var buf bytes.Buffer
		if err := render(&buf, data); err != nil {
			logrus.WithError(err).Warnf("render %s", name)
			continue
		}
		if err := out.Save(ctx, buf.Bytes(), name); err != nil {
			logrus.WithError(err).Fatalf("save %s", name)
		}
	}
}
