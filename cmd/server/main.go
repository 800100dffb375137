package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/cardfolio/api/handler"
	"github.com/fastygo/cardfolio/internal/config"
	"github.com/fastygo/cardfolio/internal/infrastructure/monitor"
	"github.com/fastygo/cardfolio/internal/infrastructure/storage"
	"github.com/fastygo/cardfolio/internal/middleware"
	"github.com/fastygo/cardfolio/internal/router"
	"github.com/fastygo/cardfolio/internal/services/availability"
	"github.com/fastygo/cardfolio/internal/services/lifecycle"
	"github.com/fastygo/cardfolio/pkg/httpcontext"
	"github.com/fastygo/cardfolio/pkg/logger"
	"github.com/fastygo/cardfolio/repository/kv"
	sessionUC "github.com/fastygo/cardfolio/usecase/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	stopListening := manager.Listen(cancel)
	defer stopListening()

	store, closeStore, err := storage.Open(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("storage unavailable", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	manager.Register("storage", lifecycle.ShutdownFunc(closeStore))

	mon := monitor.New(store, cfg.Storage.Driver, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop(ctx)
		return nil
	})

	reserved := cfg.Session.ReservedURLs
	if len(reserved) == 0 {
		reserved = availability.DefaultReserved
	}

	sessions := sessionUC.New(
		kv.NewIdentityRepository(store, cfg.Storage.Key),
		sessionUC.Options{
			VerificationCode: cfg.Session.VerificationCode,
			Delay:            sessionUC.FixedDelay(cfg.Session.SimulatedLatency),
			Availability:     availability.NewReserved(reserved),
		},
		zapLogger,
	)
	if err := sessions.Init(appCtx); err != nil {
		zapLogger.Fatal("failed to restore session", zap.Error(err))
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Session:     apiHandler.NewSessionHandler(sessions, ctxAdapter, zapLogger),
		Entitlement: apiHandler.NewEntitlementHandler(sessions, ctxAdapter, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}
	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      middleware.RequestLogger(zapLogger)(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("env", cfg.Environment),
			zap.String("storage", cfg.Storage.Driver))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			cancel()
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
