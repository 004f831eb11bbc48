package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kmmndr/motion_analyzer/internal/config"
	"github.com/kmmndr/motion_analyzer/internal/database"
	"github.com/kmmndr/motion_analyzer/internal/log"
	"github.com/kmmndr/motion_analyzer/internal/metrics"
	"github.com/kmmndr/motion_analyzer/internal/motion"
	"github.com/kmmndr/motion_analyzer/internal/outputs"
	"github.com/kmmndr/motion_analyzer/internal/routers/http"
)

func main() {
	cfg := config.LoadConfig()

	log.Log = log.Logging{Logger: cfg.LogBackend}
	log.Log.Init(cfg.LogLevel, cfg.LogDirectory, cfg.Location())

	if err := cfg.Validate(); err != nil {
		log.Log.Fatal("main: invalid configuration: " + err.Error())
	}

	log.Log.Info("main: starting motion analyzer")
	log.Log.Info("main: environment " + cfg.Environment + ", storage " + cfg.StorageBackend)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repository, err := database.New(ctx, cfg)
	cancel()
	if err != nil {
		log.Log.Fatal("main: unable to open storage: " + err.Error())
	}
	defer repository.Close()

	publisher, err := outputs.NewPublisher(cfg)
	if err != nil {
		log.Log.Warning("main: notifications disabled: " + err.Error())
		publisher = outputs.NoopPublisher{}
	}
	defer publisher.Close()

	detector := motion.NewMotionDetector(motion.Config{
		MovementThreshold: cfg.MovementThreshold,
		MinContourArea:    cfg.MinContourArea,
	})

	handler := http.NewHandler(detector, repository, metrics.NewMetrics(), publisher, cfg.MaxUploadSize(), cfg.AnalysisTimeout)
	server := http.NewServer(cfg, http.NewRouter(cfg, handler))

	go func() {
		log.Log.Info("main: HTTP server listening on port " + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Log.Fatal("main: failed to serve HTTP: " + err.Error())
		}
	}()

	<-done
	log.Log.Info("main: shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Log.Error("main: error shutting down HTTP server: " + err.Error())
	} else {
		log.Log.Info("main: HTTP server gracefully stopped")
	}
}
