package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chemviz/internal/dao"
	"chemviz/internal/events"
	"chemviz/internal/view"
	"chemviz/pkg/log"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow analysis events published by running dashboards",
	Run: func(cmd *cobra.Command, args []string) {
		conf := mustLoadConfig()

		c, err := events.NewConsumer(conf.Events, func(e *dao.AnalysisEvent) error {
			logrus.WithFields(logrus.Fields{
				"id":    e.Id,
				"file":  e.File,
				"total": e.Summary.TotalCount,
			}).Infof("analysis at %s, avg flowrate %s, avg pressure %s, avg temperature %s", e.AnalyzedAt,
				view.FormatAverage(&e.Summary.AvgFlowrate),
				view.FormatAverage(&e.Summary.AvgPressure),
				view.FormatAverage(&e.Summary.AvgTemperature))
			return nil
		}, log.Component("consumer"))
		if err != nil {
			logrus.Fatalf("Failed to create consumer: %v", err)
		}
		if err := c.Start(); err != nil {
			logrus.Fatal(err)
		}

		termChan := make(chan os.Signal, 1)
		signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

		<-termChan
		logrus.Infof("consumer is shutting down...")
		c.Stop()
	},
}
