// KLayout shows the active keyboard layout in a small always-on-top
// toolbar and cycles through the configured layouts on a global hotkey.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"klayout/internal/app"
	"klayout/internal/config"
	"klayout/internal/hotkey"
	"klayout/internal/layout"
	"klayout/internal/xkb"
)

// Version is set at build time through -ldflags.
var Version = "dev"

func main() {
	var err error
	// the hotkey library needs the main thread on some platforms
	hotkey.RunOnMainThread(func() {
		err = run()
	})

	var cfgErr *layout.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		log.Printf("invalid layout list: %v", err)
		os.Exit(1)
	case err != nil:
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.json (default $XDG_CONFIG_HOME/klayout/config.json)")
	evdevXMLPath := flag.String("evdev-xml-path", xkb.DefaultPath, "path to evdev.xml")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if *configPath == "" {
		*configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("starting klayout", "version", Version, "config", *configPath)

	a, err := app.New(ctx, app.Options{
		ConfigPath: *configPath,
		EvdevPath:  *evdevXMLPath,
	}, logger)
	if err != nil {
		return err
	}

	return a.Run()
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	if !debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
