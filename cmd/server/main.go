package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/cache"
	"github.com/mamadbah2/hotel-admin/internal/config"
	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/repository/mongodb"
	"github.com/mamadbah2/hotel-admin/internal/repository/sheets"
	"github.com/mamadbah2/hotel-admin/internal/scheduler"
	"github.com/mamadbah2/hotel-admin/internal/server/handlers"
	"github.com/mamadbah2/hotel-admin/internal/server/router"
	commandsvc "github.com/mamadbah2/hotel-admin/internal/service/commands"
	hotelsvc "github.com/mamadbah2/hotel-admin/internal/service/hotel"
	messagingsvc "github.com/mamadbah2/hotel-admin/internal/service/messaging"
	reportingsvc "github.com/mamadbah2/hotel-admin/internal/service/reporting"
	"github.com/mamadbah2/hotel-admin/pkg/clients/anthropic"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
	whatsappclient "github.com/mamadbah2/hotel-admin/pkg/clients/whatsapp"
	"github.com/mamadbah2/hotel-admin/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()
	models.SetDateLocation(loc)

	listCache := cache.Open(ctx, cfg.Redis, baseLogger.Named("cache"))
	if closer, ok := listCache.(*cache.Redis); ok {
		defer func() { _ = closer.Close() }()
	}

	apiClient := hotelapi.NewClient(cfg.HotelAPI, baseLogger.Named("client.hotelapi"))
	hotelService := hotelsvc.NewService(apiClient, listCache, baseLogger.Named("svc.hotel"))
	reportingService := reportingsvc.NewService(hotelService, baseLogger.Named("svc.reporting"))

	// Report snapshots: MongoDB and the Google Sheet are both optional sinks.
	// Reads go to MongoDB when present, else to the sheet.
	var (
		sinks        []scheduler.Sink
		reportReader handlers.ReportReader
	)
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks = append(sinks, scheduler.Sink{Name: "mongodb", Store: mongoRepo})
		reportReader = mongoRepo
	}
	if cfg.Sheets.Enabled() {
		sheet, err := sheets.NewGoogleSheet(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportLog := sheets.NewReportLog(sheet, cfg.Sheets.ReportRange, baseLogger.Named("repo.sheets"))
		if err := reportLog.EnsureHeader(ctx); err != nil {
			baseLogger.Warn("could not check report sheet header", zap.Error(err))
		}
		sinks = append(sinks, scheduler.Sink{Name: "sheets", Store: reportLog})
		if reportReader == nil {
			reportReader = reportLog
		}
	}

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey, "")
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, free-text commands disabled")
	}

	h := router.Handlers{
		Auth:          handlers.NewAuthHandler(hotelService, baseLogger.Named("handlers.auth")),
		Reservations:  handlers.NewReservationHandler(hotelService, loc, baseLogger.Named("handlers.reservations")),
		Users:         handlers.NewUserHandler(hotelService, baseLogger.Named("handlers.users")),
		Notifications: handlers.NewNotificationHandler(hotelService, baseLogger.Named("handlers.notifications")),
		Dashboard:     handlers.NewDashboardHandler(reportingService, hotelService, cfg.Timeline.DayWidth, loc, baseLogger.Named("handlers.dashboard")),
		Reports:       handlers.NewReportHandler(reportReader, reportingService, hotelService, loc, baseLogger.Named("handlers.reports")),
	}
	h.AddCatalogs(hotelService, baseLogger.Named("handlers.catalog"))

	var notifier scheduler.Notifier
	if cfg.WhatsApp.Enabled() {
		commandDispatcher := commandsvc.NewService(reportingService, hotelService, aiClient, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingService := messagingsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))
		h.Webhook = handlers.NewWebhookHandler(messagingService, baseLogger.Named("handlers.whatsapp"))
		if cfg.WhatsApp.ManagerID != "" {
			notifier = messagingService
		}
	} else {
		baseLogger.Warn("whatsapp not configured, webhook and manager notifications disabled")
	}

	engine := router.New(h, cfg.Server.CORSOrigins, baseLogger.Named("router"))

	if len(sinks) > 0 || notifier != nil {
		sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingService, sinks, notifier, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("hotel_api", cfg.HotelAPI.BaseURL))
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
