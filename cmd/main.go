package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workers/inner/auth"
	"workers/inner/common"
	"workers/inner/database"
	"workers/inner/gender"
	"workers/inner/info"
	"workers/inner/validator"
	"workers/inner/web"
	"workers/inner/worker"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 30 * time.Second

// @title       Workers API
// @version     1.0
// @description CRUD API for worker records with PESEL validation.
// @BasePath    /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	envFile := flag.String("env", ".env", "path to the .env file")
	seedSize := flag.Int("seed", 0, "create N synthetic workers and exit")
	flag.Parse()

	// читаем конфиг
	var cfg = common.GetConfig(*envFile)
	// создаём логгер
	var logger = common.NewLogger(cfg)
	// отложенный вызов записи сообщений из буфера в лог
	defer func() { _ = logger.Sync() }()

	db, err := database.ConnectDbWithCfg(cfg, logger)
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing db", zap.Error(err))
		}
	}()

	if cfg.DbAutomigrate {
		if err = database.Migrate(db, logger); err != nil {
			logger.Fatal("error applying migrations", zap.Error(err))
		}
	}

	var requestValidator = validator.New()
	var genderRepo = gender.NewRepository(db)
	var workerRepo = worker.NewRepository(db)
	var workerService = worker.NewService(
		workerRepo,
		genderRepo,
		worker.NewValidationService(requestValidator),
		worker.NewRecordBuilder(bcrypt.DefaultCost),
		logger,
	)

	if *seedSize > 0 {
		created, err := worker.NewSeeder(workerService, logger).Seed(context.Background(), *seedSize)
		if err != nil {
			logger.Fatal("error seeding workers", zap.Int("created", created), zap.Error(err))
		}
		return
	}

	var server = build(cfg, logger, db, workerService, genderRepo, workerRepo, requestValidator)

	go func() {
		if err := server.App.Listen(cfg.HttpAddr); err != nil {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", cfg.HttpAddr))

	// ждём сигнала остановки
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down server")
	if err := server.App.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// build собирает веб-сервер и регистрирует контроллеры
func build(
	cfg common.Config,
	logger *common.Logger,
	db info.Pinger,
	workerService *worker.Service,
	genderRepo *gender.Repository,
	workerRepo *worker.Repository,
	requestValidator *validator.Validator,
) *web.Server {
	var server = web.NewServer(cfg, logger)

	worker.NewController(server, workerService, logger).RegisterRoutes()
	gender.NewController(server, genderRepo, logger).RegisterRoutes()

	var authService = auth.NewService(workerRepo, requestValidator, cfg.JwtSecret, logger)
	auth.NewController(server, authService, logger).RegisterRoutes()

	info.NewController(server, cfg, db, logger).RegisterRoutes()
	server.InitSwagger()

	return server
}
