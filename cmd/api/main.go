package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cbodonnell/monopoly/pkg/api"
	"github.com/cbodonnell/monopoly/pkg/config"
	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/cbodonnell/monopoly/pkg/version"
)

func main() {
	port := flag.Int("port", 9090, "port to listen on")
	allowOrigin := flag.String("allow-origin", "", "comma-separated list of allowed origins, any origin when empty")
	configPath := flag.String("config", "", "Path to a YAML config file")
	envFile := flag.String("env-file", ".env", "Path to a dotenv file, ignored when missing")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting api server version %s", version.Get())

	if err := config.LoadEnvFile(*envFile); err != nil {
		panic(err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.NewRepositoryFromURL(ctx, cfg.DatabaseURL, cfg.Migrations)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	apiServerOpts := api.NewAPIServerOptions{
		Port:       *port,
		Repository: repository,
	}
	for _, origin := range strings.Split(*allowOrigin, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			apiServerOpts.AllowedOrigins = append(apiServerOpts.AllowedOrigins, origin)
		}
	}
	tlsCertFile := os.Getenv("MONOPOLY_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("MONOPOLY_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}
