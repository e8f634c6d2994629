package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"logistics/cmd"
	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	publisher, err := rabbitmq.Dial(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Error connecting to the message broker: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		orderrepo.NewGormOrderRepository(gormDB),
		publisher,
		logger,
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	sqlDB, err := sql.Open("postgres", configs.PostgresDSN())
	if err != nil {
		log.Fatalf("Error opening the order store: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Error initializing the order store: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Error migrating the order store schema: %v", err)
	}

	return gormDB
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		LedgerGatewayURL: goDotEnvVariable("LEDGER_GATEWAY_URL"),
		LedgerTimeout:    durationEnvVariable("LEDGER_TIMEOUT", 30*time.Second),
		RabbitMQURL:      goDotEnvVariable("RABBITMQ_URL"),
		AuditSchedule:    goDotEnvVariable("AUDIT_SCHEDULE"),
		PendingThreshold: durationEnvVariable("PENDING_THRESHOLD", 15*time.Minute),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	app.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
