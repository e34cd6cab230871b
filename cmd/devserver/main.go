package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/frontline/pkg/devserver"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/version"
)

func main() {
	port := flag.Int("port", 5000, "Port to listen on")
	fixture := flag.String("fixture", "", "JSON world fixture to load instead of generating one")
	seed := flag.Int64("seed", 0, "Seed for world generation and room ids (0 uses the clock)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting dev server version %s", version.Get())

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	server := devserver.NewServer(devserver.NewServerOptions{
		Port:        *port,
		FixturePath: *fixture,
		Seed:        *seed,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	// Gracefully handle Ctrl+C to stop the program
	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopSignal:
		log.Info("Received stop signal")
		cancel()
		<-errChan
	case err := <-errChan:
		if err != nil {
			log.Error("Dev server failed: %v", err)
			os.Exit(1)
		}
	}

	log.Info("Exiting dev server")
}
