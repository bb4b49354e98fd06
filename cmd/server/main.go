package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/application"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/config"
	"github.com/prasantk123/Current-Affairs-Mock-Test-Platform--Assam/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("mocktest-portal", "Mock Test Portal - serves the test list, test, result, admin and manager pages")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	env := kingpinApp.Flag("env", "Runtime environment: production or development").Enum("production", "prod", "development", "dev")
	anchor := kingpinApp.Flag("anchor", "Selector of the shell element the pages mount into, e.g. #app").String()
	webDir := kingpinApp.Flag("web-dir", "Serve the shell and static assets from this directory instead of the embedded copy").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed per client (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := cliOverrides(*configFile, *port, *env, *anchor, *webDir, *rateLimitRPSFlag, *rateLimitBurstFlag)

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.Production())
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// cliOverrides converts parsed flag values into config overrides. Empty
// strings and negative limits mean the flag was not given.
func cliOverrides(configFile, port, env, anchor, webDir string, rps float64, burst int) *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: configFile,
	}

	if port != "" {
		overrides.Port = &port
	}

	if env != "" {
		overrides.Environment = &env
	}

	if anchor != "" {
		overrides.Anchor = &anchor
	}

	if webDir != "" {
		overrides.WebDir = &webDir
	}

	if rps >= 0 {
		overrides.RateLimitRPS = &rps
	}

	if burst >= 0 {
		overrides.RateLimitBurst = &burst
	}

	return overrides
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
