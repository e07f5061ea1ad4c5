package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"predictiontrader/src/database"
	"predictiontrader/src/executors"
	"predictiontrader/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Predictiontrader CMD"
	app.Usage = "The predictiontrader command line interface"

	app.Commands = []cli.Command{
		scanCMD,
		monitorCMD,
		serveCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	scanCMD = cli.Command{
		Name:        "scan",
		Usage:       "run one scan cycle",
		Action:      scanAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Fetch prediction markets once, generate proposals and write a scan report`,
	}
	monitorCMD = cli.Command{
		Name:        "monitor",
		Usage:       "run the scan scheduler",
		Action:      monitorAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run scan cycles periodically with performance refresh and fill streaming`,
	}
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the HTTP API",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Serve the proposal and trade lifecycle API`,
	}
)

func scanAction(_ *cli.Context) error {

	logrus.Info("Starting scan CMD")
	logrus.WithField("cmd", "scan")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := executors.RunScanOnce(context.Background()); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func monitorAction(_ *cli.Context) error {

	logrus.Info("Starting monitor CMD")
	logrus.WithField("cmd", "monitor")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
	}()

	if err := executors.StartLoop(ctx); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func serveAction(_ *cli.Context) error {

	logrus.Info("Starting serve CMD")
	logrus.WithField("cmd", "serve")

	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	server.StartServer(os.Getenv("SERVER_PORT"))

	return nil
}
