// Package main (cmd/devgateway) serves an in-memory stand-in for a Swarm bzz
// gateway so that packages can be published without a Swarm node.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruteri/swarm-package-registry/cmd/flags"
	"github.com/ruteri/swarm-package-registry/gateway"
	"github.com/urfave/cli/v2"
)

var cliFlags []cli.Flag = append([]cli.Flag{
	&cli.StringFlag{
		Name:  "listen-addr",
		Value: "127.0.0.1:8500",
		Usage: "address to listen on for the bzz API",
	},
	&cli.Int64Flag{
		Name:  "max-upload-bytes",
		Value: 64 << 20,
		Usage: "largest accepted archive, zero for no limit",
	},
	flags.PprofFlag,
	flags.DrainSecondsFlag,
}, flags.LogFlags...)

func main() {
	app := &cli.App{
		Name:  "devgateway",
		Usage: "Serve a local in-memory Swarm bzz gateway",
		Flags: cliFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			cfg := &gateway.HTTPServerConfig{
				ListenAddr:               cCtx.String("listen-addr"),
				EnablePprof:              cCtx.Bool(flags.PprofFlag.Name),
				Log:                      logger,
				MaxUploadBytes:           cCtx.Int64("max-upload-bytes"),
				DrainDuration:            time.Duration(cCtx.Int64(flags.DrainSecondsFlag.Name)) * time.Second,
				GracefulShutdownDuration: 30 * time.Second,
				ReadTimeout:              60 * time.Second,
				WriteTimeout:             30 * time.Second,
			}

			server, err := gateway.New(cfg)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Gateway is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
