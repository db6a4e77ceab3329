package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/bairooha/donordesk/internal/assist"
	"github.com/bairooha/donordesk/internal/campaign"
	"github.com/bairooha/donordesk/internal/config"
	"github.com/bairooha/donordesk/internal/genai"
	"github.com/bairooha/donordesk/internal/httpapi"
	"github.com/bairooha/donordesk/internal/ledger"
	"github.com/bairooha/donordesk/internal/metrics"
	"github.com/bairooha/donordesk/internal/middleware"
	"github.com/bairooha/donordesk/internal/notify"
	"github.com/bairooha/donordesk/internal/service"
	"github.com/bairooha/donordesk/internal/storage"
	"github.com/bairooha/donordesk/internal/storage/memory"
	"github.com/bairooha/donordesk/internal/storage/sqlite"
	"github.com/bairooha/donordesk/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	l := ledger.New(store)
	if cfg.SeedOnStart {
		if err := l.Reset(context.Background()); err != nil {
			return fmt.Errorf("reset to seed data: %w", err)
		}
		slog.Info("Stored collections dropped, serving seed data")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	provider := genai.WithMetrics(newProvider(cfg), m)
	assistant := assist.NewAssistant(provider)
	fraud := assist.NewFraudAdapter(provider,
		assist.WithTimeout(cfg.FraudTimeout),
		assist.WithConcurrency(cfg.FraudConcurrency),
		assist.WithFraudMetrics(m),
	)

	publisher := newPublisher(cfg)
	defer publisher.Close()
	controller := campaign.NewController(l, assistant, publisher)

	interceptors := connect.WithInterceptors(middleware.NewObserver(m))
	mount := func(path string, h http.Handler) httpapi.Mount {
		return httpapi.Mount{Path: path, Handler: h}
	}
	router := httpapi.NewRouter(httpapi.Options{
		Gatherer: reg,
		Ready: func(ctx context.Context) error {
			_, err := l.Campaigns(ctx)
			return err
		},
		Services: []httpapi.Mount{
			mount(service.NewDashboardServiceHandler(service.NewDashboardService(l, controller,
				service.WithFeedInterval(cfg.LiveFeedInterval),
				service.WithFeedSize(cfg.LiveFeedSize),
			), interceptors)),
			mount(service.NewDonorServiceHandler(service.NewDonorService(l, fraud, assistant), interceptors)),
			mount(service.NewLedgerServiceHandler(service.NewLedgerService(l), interceptors)),
			mount(service.NewCampaignServiceHandler(service.NewCampaignService(controller), interceptors)),
			mount(service.NewStaffServiceHandler(service.NewStaffService(l), interceptors)),
			mount(service.NewAssistantServiceHandler(service.NewAssistantService(assistant), interceptors)),
		},
	})

	// Cancelled on shutdown so open live-feed streams end.
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		// h2c serves HTTP/2 without TLS for Connect streaming.
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost:%s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	cancelStreams()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped gracefully")
	return nil
}

func openStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		slog.Info("Storage initialized", "driver", cfg.StoreDriver)
		return memory.New(), nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.StoreDriver, "database", cfg.DBPath)
		return store, nil
	}
}

// newProvider returns Gemini when a key is set. Without one, generation
// reports ErrNotConfigured and fraud checks degrade to "analysis unavailable".
func newProvider(cfg *config.Config) genai.Provider {
	if !cfg.GeminiConfigured() {
		slog.Warn("GEMINI_API_KEY not set, generative features are disabled")
		return genai.Disabled{}
	}
	provider, err := genai.NewGemini(genai.GeminiOptions{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.GenAITimeout},
	})
	if err != nil {
		slog.Error("Failed to configure Gemini, generative features are disabled", "error", err)
		return genai.Disabled{}
	}
	slog.Info("Generative provider configured", "provider", "gemini", "model", cfg.GeminiModel)
	return provider
}

func newPublisher(cfg *config.Config) notify.Publisher {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, broadcast alerts are logged only")
		return notify.LogPublisher{}
	}
	publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to connect to AMQP, broadcast alerts are logged only", "error", err)
		return notify.LogPublisher{}
	}
	slog.Info("Broadcast alerts publish to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return publisher
}
