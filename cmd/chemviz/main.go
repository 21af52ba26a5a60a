package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chemviz/internal/backend"
	"chemviz/internal/config"
	"chemviz/internal/dashboard"
	"chemviz/internal/events"
	"chemviz/internal/version"
	"chemviz/pkg/log"
)

var (
	logLevel   string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "chemviz",
	Short: "chemviz is a chemical equipment CSV visualizer",
	Long: `Upload chemical equipment CSV files to the analysis service, browse
summaries, charts and upload history, and download PDF reports.
Version: ` + version.VERSION + `/` + version.COMMIT,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.InitLog(logLevel)
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (YAML or TOML), defaults are used when empty")

	rootCmd.AddCommand(serveCommand)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}

func mustLoadConfig() *config.Config {
	conf, err := config.LoadConfig(configFile)
	if err != nil {
		logrus.Fatal("initConfig error, ", err.Error())
	}
	logrus.Debugf("config: %+v", conf.Redacted())
	return conf
}

func mustNewClient(conf *config.Config) *backend.Client {
	cli, err := backend.NewClient(conf.Backend, log.Component("backend"))
	if err != nil {
		logrus.WithError(err).Fatal("new backend client")
	}
	logrus.Debugf("backend: %s", cli.BaseURL())
	return cli
}

// newDashboard wires a dashboard to the backend and, when enabled, to the
// event publisher. The returned func releases the publisher.
func newDashboard(conf *config.Config) (*dashboard.Dashboard, func()) {
	cli := mustNewClient(conf)

	var notifier dashboard.Notifier
	stop := func() {}
	if conf.Events.Enabled {
		pub, err := events.NewPublisher(conf.Events, log.Component("events"))
		if err != nil {
			logrus.WithError(err).Fatal("new event publisher")
		}
		notifier = pub
		stop = pub.Stop
	}

	return dashboard.New(cli, notifier, log.Component("dashboard")), stop
}
