package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zoobr/csxhasura/clients/hasura"
	"github.com/zoobr/csxhasura/config"
	"github.com/zoobr/csxhasura/logger"
	"github.com/zoobr/csxhasura/metrics"
	"github.com/zoobr/csxhasura/tracer"
	"github.com/zoobr/csxhasura/transport"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		_, _ = logger.Init(logger.LoggerModeDev)
		logger.Fatal(err, nil)
	}

	syncLogs, err := logger.Init(cfg.LoggerMode)
	if err != nil {
		logger.Fatal(err, nil)
	}
	defer syncLogs()

	metrics.Init(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)

	if len(cfg.Tracer.JaegerURL) != 0 {
		finish, err := tracer.Init(cfg.Tracer.JaegerURL, cfg.Tracer.ServiceNamespace, cfg.Tracer.ServiceName)
		if err != nil {
			logger.Fatal(err, nil, "jaegerURL", cfg.Tracer.JaegerURL)
		}
		defer finish(context.Background())
	}

	svc, err := hasura.NewService(cfg.Hasura, hasura.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}))
	if err != nil {
		logger.Fatal(err, nil)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", transport.NewHTTPHandler(svc, "graphql"))
	mux.Handle("/metrics", metrics.HTTPHandler())

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infow("HTTP server started", "addr", cfg.HTTPAddr, "hasura", cfg.Hasura.GraphQLEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err, nil, "addr", cfg.HTTPAddr)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error(err, nil)
	}
	logger.Info("HTTP server stopped")
}
