package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"timelinebot/backend"
	"timelinebot/config"
	"timelinebot/handler"
	"timelinebot/logging"
	"timelinebot/metrics"
)

var Version = "dev"

func main() {
	cli, err := config.ParseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if cli.Version {
		fmt.Println(Version)
		return
	}

	log := logging.GetLogger()

	if err := loadDotEnv(cli.EnvFile); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}

	cfg, err := config.LoadConfig(cli.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cli.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logging.ParseLevel(cfg.LogLevel))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, newServer(cfg)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Infoln("Server stopped")
}

// newServer wires the model client and router into an http.Server.
func newServer(cfg *config.Config) *http.Server {
	client := backend.NewBackendClient(cfg.UpstreamURL, cfg.Model, cfg.UpstreamTimeout)
	logging.GetLogger().WithFields(logrus.Fields{
		"upstream": cfg.UpstreamURL,
		"model":    client.Model(),
	}).Infof("Starting server on %s", cfg.ListenAddress)
	return &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           handler.NewRouter(cfg, client, metrics.New()),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// run serves until ctx is done, then shuts the server down gracefully.
func run(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loadDotEnv loads environment variables from path. A missing file is ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
