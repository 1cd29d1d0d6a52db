package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/sitestock/internal/config"
	"github.com/mamadbah2/sitestock/internal/domain/models"
	"github.com/mamadbah2/sitestock/internal/metrics"
	"github.com/mamadbah2/sitestock/internal/repository/mongodb"
	"github.com/mamadbah2/sitestock/internal/repository/sheets"
	"github.com/mamadbah2/sitestock/internal/scheduler"
	"github.com/mamadbah2/sitestock/internal/server/handlers"
	"github.com/mamadbah2/sitestock/internal/server/router"
	inventorysvc "github.com/mamadbah2/sitestock/internal/service/inventory"
	notifiersvc "github.com/mamadbah2/sitestock/internal/service/notifier"
	whatsappclient "github.com/mamadbah2/sitestock/pkg/clients/whatsapp"
	"github.com/mamadbah2/sitestock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var sheetWriter scheduler.RowAppender
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetWriter = sheetsRepo
		baseLogger.Info("sheets summary export enabled", zap.String("range", cfg.Sheets.SummaryRange))
	}

	inventorySvc := inventorysvc.NewService(mongoRepo, baseLogger.Named("svc.inventory")).
		WithClock(func() time.Time { return time.Now().In(loc) })

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.AccessToken != "" && cfg.WhatsApp.PhoneNumberID != "" {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp client enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, alert digests disabled")
	}
	notifier := notifiersvc.NewWhatsAppNotifier(whatsClient, cfg.WhatsApp.AlertRecipient, baseLogger.Named("svc.notifier"))

	recorder := metrics.NewRecorder()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = recorder.Handler()
	}

	window := models.AlertWindow{DaysAhead: cfg.Alerts.DaysAhead}
	engine := router.New(
		handlers.NewInventoryHandler(inventorySvc, window, baseLogger.Named("handlers.inventory")),
		handlers.NewMessageHandler(notifier, baseLogger.Named("handlers.message")),
		metricsHandler,
		baseLogger.Named("router"),
	)

	sched := scheduler.NewScheduler(scheduler.Options{
		AlertSchedule:  cfg.Alerts.CronSchedule,
		ReportSchedule: cfg.Reporting.CronSchedule,
		Location:       loc,
		Window:         window,
		Sheet:          sheetWriter,
		SheetRange:     cfg.Sheets.SummaryRange,
	}, inventorySvc, notifier, recorder, mongoRepo, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
