package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"tltstops.dev/internal/app"
	"tltstops.dev/internal/appconf"
	"tltstops.dev/internal/logging"
	"tltstops.dev/internal/restapi"
)

func main() {
	config, err := loadConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, config.Level())

	application, err := app.New(config, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		os.Exit(1)
	}

	if err := serve(application); err != nil {
		logging.LogError(logger, "server stopped with error", err)
		os.Exit(1)
	}
}

// loadConfig starts from the built-in defaults, applies the YAML file named
// by -config if any, then applies every flag that was set explicitly.
func loadConfig(args []string, output io.Writer) (appconf.Config, error) {
	defaults := appconf.Default()

	fs := flag.NewFlagSet("tltstops", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		configPath  = fs.String("config", "", "Path to a YAML configuration file")
		port        = fs.Int("port", defaults.Port, "API server port")
		env         = fs.String("env", defaults.EnvName, "Environment (development|test|production)")
		logLevel    = fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
		timezone    = fs.String("timezone", defaults.Timezone, "IANA timezone of the departures feed")
		routesURL   = fs.String("routes-url", defaults.Feeds.RoutesURL, "URL of the routes feed")
		stopsURL    = fs.String("stops-url", defaults.Feeds.StopsURL, "URL of the stops feed")
		arrivalsURL = fs.String("arrivals-url", defaults.Feeds.ArrivalsURL, "URL of the real-time departures endpoint")
	)
	if err := fs.Parse(args); err != nil {
		return appconf.Config{}, err
	}

	config := defaults
	if *configPath != "" {
		loaded, err := appconf.LoadFile(*configPath)
		if err != nil {
			return appconf.Config{}, err
		}
		config = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			config.Port = *port
		case "env":
			config.EnvName = appconf.CanonicalEnvName(*env)
		case "log-level":
			config.LogLevel = *logLevel
		case "timezone":
			config.Timezone = *timezone
		case "routes-url":
			config.Feeds.RoutesURL = *routesURL
		case "stops-url":
			config.Feeds.StopsURL = *stopsURL
		case "arrivals-url":
			config.Feeds.ArrivalsURL = *arrivalsURL
		}
	})

	if err := config.Validate(); err != nil {
		return appconf.Config{}, err
	}
	return config, nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests.
func serve(application *app.Application) error {
	logger := application.Logger
	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Minute,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", application.Config.EnvName))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
