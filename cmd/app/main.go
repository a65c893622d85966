package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"runners/cmd"
	inamqp "runners/internal/adapters/in/amqp"
	httpadapter "runners/internal/adapters/in/http"
	outamqp "runners/internal/adapters/out/amqp"
	"runners/internal/adapters/out/postgres/assignmentrepo"
	"runners/internal/adapters/out/postgres/availabilityrepo"
	"runners/internal/adapters/out/postgres/pendingorderrepo"
	"runners/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	location, err := time.LoadLocation(configs.DeliveryTimezone)
	if err != nil {
		log.Fatalf("Invalid delivery timezone %q: %v", configs.DeliveryTimezone, err)
	}
	clock := cmd.NewSystemClock(location)

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	broker := mustConnectBroker(configs)
	defer broker.Close()

	publisher := outamqp.NewNotificationPublisher(broker, configs.EventsExchange)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, clock, logger)

	listener, err := inamqp.NewOrderListener(
		broker,
		configs.OrderInboxQueue,
		app.CreateSubmitPendingOrderCommandHandler(),
		app.CreateNotifyCollectionReadyCommandHandler(),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create order listener: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if listenErr := listener.Start(ctx); listenErr != nil && ctx.Err() == nil {
			logger.Error("order listener stopped", "error", listenErr)
		}
	}()

	jobManager := jobs.NewJobManager(
		app.CreateDispatchOrdersCommandHandler(),
		app.CreatePurgeAvailabilityCommandHandler(),
		clock,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
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
		AmqpHost:         goDotEnvVariable("AMQP_HOST"),
		AmqpPort:         goDotEnvVariable("AMQP_PORT"),
		AmqpUser:         goDotEnvVariable("AMQP_USER"),
		AmqpPassword:     goDotEnvVariable("AMQP_PASSWORD"),
		AmqpVHost:        goDotEnvVariableOr("AMQP_VHOST", "/"),
		EventsExchange:   goDotEnvVariableOr("EVENTS_EXCHANGE", "smunch.events"),
		OrderInboxQueue:  goDotEnvVariableOr("ORDER_INBOX_QUEUE", "order.inbox"),
		DeliveryTimezone: goDotEnvVariableOr("DELIVERY_TIMEZONE", "Asia/Singapore"),
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

func goDotEnvVariableOr(key, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&pendingorderrepo.PendingOrderDTO{},
		&availabilityrepo.AvailabilityDTO{},
		&assignmentrepo.AssignmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func mustConnectBroker(configs cmd.Config) *outamqp.Client {
	port, err := strconv.Atoi(configs.AmqpPort)
	if err != nil {
		log.Fatalf("Invalid AMQP port %q: %v", configs.AmqpPort, err)
	}

	broker, err := outamqp.Dial(outamqp.Config{
		Host:     configs.AmqpHost,
		Port:     port,
		User:     configs.AmqpUser,
		Password: configs.AmqpPassword,
		VHost:    configs.AmqpVHost,
	})
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}

	if err = broker.DeclareTopology(configs.EventsExchange, configs.OrderInboxQueue); err != nil {
		log.Fatalf("Failed to declare broker topology: %v", err)
	}
	return broker
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateDispatchOrdersCommandHandler(),
		app.CreateRegisterAvailabilityCommandHandler(),
		app.CreateRemoveAvailabilityCommandHandler(),
		app.CreateResetAssignmentsCommandHandler(),
		app.CreateGetRunnerOrdersQueryHandler(),
		app.CreateGetRunnerAvailabilityQueryHandler(),
		app.CreateGetPendingOrdersQueryHandler(),
		app.CreateGetPendingOrderQueryHandler(),
		app.Clock(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
