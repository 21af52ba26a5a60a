package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chemviz/internal/view"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent uploads",
	Run: func(cmd *cobra.Command, args []string) {
		conf := mustLoadConfig()
		dash, stopEvents := newDashboard(conf)
		defer stopEvents()

		if err := dash.RefreshHistory(cmd.Context()); err != nil {
			logrus.WithError(err).Fatal("fetch history")
		}
		if err := view.RenderHistory(os.Stdout, view.NewPage(dash.State())); err != nil {
			logrus.WithError(err).Fatal("render history")
		}
	},
}
