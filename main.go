package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/prospectiq/dataops-backend/api"
	"github.com/prospectiq/dataops-backend/config"
	"github.com/prospectiq/dataops-backend/database"
	"github.com/prospectiq/dataops-backend/services"
	"github.com/prospectiq/dataops-backend/storage"
	"github.com/prospectiq/dataops-backend/tasks"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	c := config.New()

	db, err := openDatabase(c)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}

	currentDB := database.New(db)
	if err := currentDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	ctx := context.Background()

	store, err := storage.New(ctx, storage.Config{
		Region:          config.GetString(c, "S3_REGION", "us-east-1"),
		Endpoint:        config.GetString(c, "S3_ENDPOINT", ""),
		AccessKeyID:     config.GetString(c, "S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: config.GetString(c, "S3_SECRET_ACCESS_KEY", ""),
		PathStyle:       config.GetString(c, "S3_PATH_STYLE", "") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("initializing object storage")
	}

	queue := tasks.NewClient(
		config.GetString(c, "TASK_QUEUE_ENDPOINT", ""),
		config.GetString(c, "TASK_QUEUE_OIDC_TOKEN", ""),
	)

	fileService := services.NewFileService(currentDB, store, queue, services.Buckets{
		Process: config.GetString(c, "PROCESS_FILE_BUCKET", "dataops-process-files"),
		Support: config.GetString(c, "SUPPORT_FILE_BUCKET", "dataops-support-files"),
	}, config.GetString(c, "INGESTION_CALLBACK_URL", ""))

	projectService := services.NewProjectService(currentDB, fileService)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, fileService, projectService)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing server")
	}

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Err(fatalErr).Msg("closing server")

	server.ShutdownGracefully(30 * time.Second)
}

func openDatabase(c map[string]string) (*gorm.DB, error) {
	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "dataops"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
