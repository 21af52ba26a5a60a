package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"chemviz/internal/server"
	"chemviz/internal/utils"
)

const shutdownTimeout = 5 * time.Second

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the chemviz web dashboard",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func runServe() {
	conf := mustLoadConfig()

	dash, stopEvents := newDashboard(conf)
	defer stopEvents()

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	dash.Mount(ctx)

	srv, err := server.NewServer(ctx, &conf.View, dash)
	if err != nil {
		logrus.Fatalf("newServer error, %s", err.Error())
	}
	go func() {
		if err := srv.Start(); err != nil {
			logrus.Fatal(err)
		}
	}()

	if conf.View.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := utils.OpenBrowserWithFallback(srv.URL()); err != nil {
				logrus.WithError(err).Warnf("open browser failed, visit %s", srv.URL())
			}
		}()
	}

	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)

	<-termChan
	logrus.Infof("server is shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
	}
}
