package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"

	"github.com/bsgreeks/greeks-validator/internal/config"
	"github.com/bsgreeks/greeks-validator/internal/monitoring"
	"github.com/bsgreeks/greeks-validator/internal/storage"

	artifactEndpoint "github.com/bsgreeks/greeks-validator/internal/artifact/endpoint"
	artifactRepo "github.com/bsgreeks/greeks-validator/internal/artifact/repo"
	artifactService "github.com/bsgreeks/greeks-validator/internal/artifact/service"
)

var (
	app     *cli.App
	version string

	greeksConfig config.GreeksConfig
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var err error
	greeksConfig, err = config.LoadConfig()
	if err != nil {
		log.Fatalln("couldn't load config : ", err)
	}

	app = cli.NewApp()
	app.Name = "greeks-api"
	app.Usage = "serve Black-Scholes Greek validation results"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "address",
			Value: greeksConfig.API.Address,
			Usage: "listen address",
		},
		cli.StringFlag{
			Name:  "output-dir",
			Value: greeksConfig.API.OutputDir,
			Usage: "directory holding the csv and png results",
		},
	}

	app.Action = func(c *cli.Context) error {
		greeksConfig.API.Address = c.String("address")
		greeksConfig.API.OutputDir = c.String("output-dir")
		if err := config.Validate(greeksConfig); err != nil {
			return err
		}
		return serve()
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}

func serve() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if info, err := os.Stat(greeksConfig.API.OutputDir); err != nil || !info.IsDir() {
		// requests answer 404 until the batch job creates it
		logger.Warn("output directory not available", "dir", greeksConfig.API.OutputDir)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)
	metrics.SetBuildInfo(version)

	var audit artifactEndpoint.DownloadAudit
	if greeksConfig.Audit.Enabled {
		db, err := storage.NewDB(greeksConfig.Audit.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		audit = storage.NewDownloadStore(db, greeksConfig.Audit.MaxRecords)
		logger.Info("download audit enabled", "db", greeksConfig.Audit.DBPath)
	}

	artifactHTTPEndpoint := artifactEndpoint.NewArtifactHTTPEndpoint(
		artifactService.NewArtifactService(
			artifactRepo.NewFileRepo(greeksConfig.API.OutputDir)),
		metrics,
		audit,
		logger,
	)

	srv := &http.Server{
		Addr:         greeksConfig.API.Address,
		Handler:      artifactEndpoint.NewHandler(artifactHTTPEndpoint, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		ReadTimeout:  config.Timeout(greeksConfig.API.ReadTimeout),
		WriteTimeout: config.Timeout(greeksConfig.API.WriteTimeout),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("greeks-api now live", "addr", srv.Addr, "output_dir", greeksConfig.API.OutputDir, "version", version)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout(greeksConfig.API.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
		return err
	}

	logger.Info("service stopped")
	return nil
}
