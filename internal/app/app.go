// Package app wires config, stores, the provider chain and the HTTP surface
// into a runnable server.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tabnote/internal/analysis"
	"tabnote/internal/config"
	"tabnote/internal/repository/runlog"
	"tabnote/internal/repository/upload"
	"tabnote/internal/server"
	"tabnote/internal/server/handler"
	"tabnote/internal/session"
)

type App struct {
	cfg    *config.Config
	server *server.Server
}

func New(cfg *config.Config) (*App, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}
	provider = analysis.NewCached(provider, cfg.Cache.MaxEntries, cfg.Cache.TTL)
	log.Printf("analysis provider: %s (timeout %s)", provider.Name(), cfg.Provider.Timeout)

	deps := session.Deps{
		Dispatcher: analysis.NewDispatcher(provider, cfg.Provider.Timeout),
		Uploads:    buildUploadStore(cfg),
		Runs:       buildRunlogStore(cfg),
	}
	h := handler.New(session.NewManager(deps))
	return &App{
		cfg:    cfg,
		server: server.New(cfg.Port, server.NewMux(h)),
	}, nil
}

// Run serves until ctx is cancelled or an interrupt arrives, then shuts the
// server down with a grace period.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildProvider(cfg *config.Config) (analysis.Provider, error) {
	backend := cfg.Provider.Backend
	if backend == "" {
		if cfg.Provider.APIKey != "" {
			backend = "gemini"
		} else {
			backend = "local"
		}
	}
	switch backend {
	case "local":
		return analysis.NewLocal(), nil
	case "fake":
		return analysis.NewFake(), nil
	case "gemini":
		if cfg.Provider.APIKey == "" {
			return nil, fmt.Errorf("gemini backend requires ANALYSIS_API_KEY or GEMINI_API_KEY")
		}
		return analysis.NewGemini(context.Background(), cfg.Provider.APIKey, cfg.Provider.Model)
	default:
		return nil, fmt.Errorf("unknown analysis backend %q", backend)
	}
}

func buildUploadStore(cfg *config.Config) upload.Store {
	if cfg.Upload.CanUseS3() {
		store, err := upload.NewS3Store(upload.S3Config{
			Endpoint:  cfg.Upload.Endpoint,
			Region:    cfg.Upload.Region,
			AccessKey: cfg.Upload.AccessKey,
			SecretKey: cfg.Upload.SecretKey,
			Bucket:    cfg.Upload.Bucket,
			UseSSL:    cfg.Upload.UseSSL,
		})
		if err == nil {
			log.Printf("upload store: s3 bucket=%s endpoint=%s", cfg.Upload.Bucket, cfg.Upload.Endpoint)
			return store
		}
		log.Printf("upload store: s3 init failed (%v), using in-memory", err)
	}
	return upload.NewMemoryStore()
}

func buildRunlogStore(cfg *config.Config) runlog.Store {
	if cfg.DatabaseURL != "" {
		store, err := runlog.NewPostgresStore(cfg.DatabaseURL)
		if err == nil {
			log.Printf("runlog store: postgres")
			return store
		}
		log.Printf("runlog store: postgres init failed (%v), using in-memory", err)
	}
	return runlog.NewMemoryStore()
}
