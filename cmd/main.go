package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zitheke_dev_v1/internal/config"
	"zitheke_dev_v1/internal/controller"
	"zitheke_dev_v1/internal/middleware"
	"zitheke_dev_v1/internal/model"
	"zitheke_dev_v1/internal/repository"
	"zitheke_dev_v1/internal/router"
	"zitheke_dev_v1/internal/service"
	"zitheke_dev_v1/internal/task"
	"zitheke_dev_v1/pkg/database"
	"zitheke_dev_v1/pkg/logger"
	"zitheke_dev_v1/pkg/net"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to $ZITHEKE_CONFIG)")
	flag.Parse()

	// 1. config & logging
	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	log, err := logger.New(logger.Config{Development: cfg.Log.Development, Level: cfg.Log.Level})
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	// 2. database
	db := initDatabase(cfg, log)

	// 3. dependencies
	deps := initDependencies(cfg, db, log)

	// 4. tasks
	stop := initTasks(cfg, deps, log)
	defer stop()

	// 5. router
	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(deps.Controllers, router.Options{
		Log:            log,
		PreviewDir:     deps.PreviewDir,
		PostCooldown:   cfg.Wizard.PostCooldown,
		ReportCooldown: cfg.Reports.Cooldown,
		MaxUploadBytes: config.MB(cfg.Server.MaxUploadMB),
	})

	// 6. serve
	startServer(cfg, r, log)
}

// ==================== Dependency container ====================

type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	PreviewDir  string
}

type Repositories struct {
	Submission repository.SubmissionRepository
	Report     repository.ReportRepository
}

type Services struct {
	Storage service.StorageProvider
	Wizard  *service.WizardService
	Report  *service.ReportService
}

// ==================== Init ====================

func initDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := database.InitDB(database.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: cfg.Database.LogLevel,
	}, log,
		&model.SubmissionRecord{},
		&model.Report{},
	)
	if err != nil {
		log.Fatal("init database", zap.Error(err))
	}

	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		log.Fatal("register audit callbacks", zap.Error(err))
	}
	return db
}

func initDependencies(cfg *config.Config, db *gorm.DB, log *zap.Logger) *Dependencies {
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenTTL: cfg.JWT.AccessTTL,
		Issuer:         cfg.JWT.Issuer,
	})

	// -------- repositories --------
	repos := &Repositories{
		Submission: repository.NewSubmissionRepository(db),
		Report:     repository.NewReportRepository(db),
	}

	// -------- infrastructure --------
	storage, previewDir := initStorage(cfg, log)
	marketplace := net.NewMarketplaceClient(net.ClientConfig{
		BaseURL:         cfg.Marketplace.BaseURL,
		Timeout:         cfg.Marketplace.Timeout,
		UserAgent:       cfg.Marketplace.UserAgent,
		BreakerFailures: cfg.Marketplace.BreakerFailures,
		BreakerCooldown: cfg.Marketplace.BreakerCooldown,
	}, log)

	// -------- services --------
	limits := service.MediaLimits{
		MaxImages:        cfg.Wizard.MaxImages,
		MaxImageBytes:    config.MB(cfg.Wizard.MaxImageMB),
		MaxVideoBytes:    config.MB(cfg.Wizard.MaxVideoMB),
		MaxVideoDuration: cfg.Wizard.MaxVideoDuration,
	}
	services := &Services{
		Storage: storage,
		Wizard: service.NewWizardService(service.WizardConfig{
			Limits:      limits,
			SuccessPath: cfg.Wizard.SuccessPath,
		}, storage, service.NewMP4Prober(), marketplace, repos.Submission, log),
		Report: service.NewReportService(repos.Report, log),
	}

	// -------- controllers --------
	controllers := &router.Controllers{
		Catalog:    controller.NewCatalogController(services.Wizard.Limits()),
		Wizard:     controller.NewWizardController(services.Wizard, log),
		Report:     controller.NewReportController(services.Report, log),
		Submission: controller.NewSubmissionController(repos.Submission, log),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		PreviewDir:  previewDir,
	}
}

// initStorage returns the preview store and, for local storage, the directory to serve.
func initStorage(cfg *config.Config, log *zap.Logger) (service.StorageProvider, string) {
	store, err := service.NewStorageProvider(service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
	})
	if err != nil {
		log.Fatal("init preview storage", zap.String("provider", cfg.Storage.Provider), zap.Error(err))
	}

	if local, ok := store.(*service.LocalStorage); ok {
		return store, local.Dir()
	}
	return store, ""
}

// ==================== Tasks ====================

func initTasks(cfg *config.Config, deps *Dependencies, log *zap.Logger) (stop func()) {
	cleanup := task.NewSessionCleanupTask(deps.Services.Wizard, cfg.Wizard.CleanupSpec, cfg.Wizard.IdleTTL, log)
	if err := cleanup.Start(); err != nil {
		log.Fatal("start session cleanup", zap.Error(err))
	}

	board := task.NewReportBoardTask(deps.Services.Report, cfg.Reports.ReloadSpec, log)
	if err := board.Start(); err != nil {
		log.Fatal("start report board reload", zap.Error(err))
	}

	return func() {
		cleanup.Stop()
		board.Stop()
	}
}

// ==================== Server ====================

func startServer(cfg *config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
