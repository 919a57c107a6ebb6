package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/codelab-2026.net/internal/adapter/crypto"
	"gitlab.com/codelab-2026.net/internal/adapter/host"
	"gitlab.com/codelab-2026.net/internal/adapter/judge0"
	"gitlab.com/codelab-2026.net/internal/adapter/logging"
	"gitlab.com/codelab-2026.net/internal/adapter/postgres/submissionrepo"
	"gitlab.com/codelab-2026.net/internal/adapter/postgres/testcaserepo"
	"gitlab.com/codelab-2026.net/internal/adapter/postgres/userrepository"
	"gitlab.com/codelab-2026.net/internal/adapter/redis/statestore"
	"gitlab.com/codelab-2026.net/internal/config"
	auth2 "gitlab.com/codelab-2026.net/internal/core/services/auth"
	"gitlab.com/codelab-2026.net/internal/core/services/facade"
	"gitlab.com/codelab-2026.net/internal/core/services/grading"
	"gitlab.com/codelab-2026.net/internal/core/services/project"
	logger2 "gitlab.com/codelab-2026.net/internal/global/logger"
	"gitlab.com/codelab-2026.net/internal/handlers"
	http2 "gitlab.com/codelab-2026.net/internal/http"
)

func main() {
	InitReader()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting coding assessment service")

	sysCfg := config.NewSystemConfig()

	logger := logger2.Logger
	if sysCfg.DebugMode {
		logger = logging.NewDevelopmentLogger()
	}

	db, err := setupDatabase(sysCfg)
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})

	// SECONDARY PORTS
	stateStore := statestore.NewStateStore(redisClient, logger)
	submissionRepo := submissionrepo.NewSubmissionRepository(db, logger, os.Getenv("DB_SCHEMA"))
	testCaseRepo := testcaserepo.NewTestCaseRepository(db, logger, os.Getenv("DB_SCHEMA"))
	userPort := userrepository.New(db, logger, os.Getenv("DB_SCHEMA"))
	gradeSink := host.NewWebhookGradeSink(sysCfg.GradeSinkURL, logger)
	executor := judge0.NewClient(sysCfg.Judge0Config, logger)

	// PRIMARY PORTS
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	projectSvc := project.NewProjectService(sysCfg.ProjectConfig, logger)
	gradingSvc := grading.NewGradingService(executor, testCaseRepo, submissionRepo, gradeSink, sysCfg.GradingConfig, logger)
	facadeSvc := facade.NewFacadeService(stateStore, submissionRepo, projectSvc, gradingSvc, sysCfg.GradingConfig, logger)
	localAuth := auth2.NewLocalAuthService(userPort, jwtProvider)
	middleware := handlers.NewMiddlewareProvider(jwtProvider, logger)
	serviceProvider := http2.NewServiceProvider(facadeSvc, localAuth, middleware)

	// server
	httServer := http2.NewServer(8082, "codingAssessment", *serviceProvider, logger)
	if err := httServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httServer.Stop(ctx)
	db.Close()
	redisClient.Close()

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.AppConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.PostgresConfig.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
