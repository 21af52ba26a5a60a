package main

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chemviz/internal/dashboard"
	"chemviz/internal/sink"
	"chemviz/pkg/log"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Download the PDF report of an analysis to the configured sink",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			logrus.Fatalf("invalid analysis id %q", args[0])
		}

		conf := mustLoadConfig()
		cli := mustNewClient(conf)
		saver, err := sink.New(conf.Report, log.Component("sink"))
		if err != nil {
			logrus.WithError(err).Fatal("new report sink")
		}

		data, err := cli.Report(cmd.Context(), id)
		if err != nil {
			logrus.WithError(err).Fatalf("download report %d", id)
		}
		if err := saver.Save(cmd.Context(), data, dashboard.ReportFilename(id)); err != nil {
			logrus.WithError(err).Fatalf("save report %d", id)
		}
	},
}
