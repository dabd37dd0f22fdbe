package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"casepilot/consumer"
	"casepilot/handlers"
	"casepilot/middleware"
	"casepilot/monitoring"
	"casepilot/repository"
	"casepilot/service"
	"casepilot/utils"
)

func main() {
	logger := log.New(os.Stdout, "CASEPILOT: ", log.LstdFlags|log.Lshortfile)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := utils.InitSentry(dsn); err != nil {
			logger.Printf("Sentry init failed: %v", err)
		}
	}

	monitoring.Init()

	diag := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := repository.NewDB()
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repository.CloseDB(db); err != nil {
			logger.Printf("Error closing database connection: %v", err)
		}
	}()

	// Redis is required for the health endpoint and the projections;
	// retry a few times before giving up.
	var redisClient utils.RedisClient
	maxRetries := 5
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		redisClient, err = utils.NewRedisClient()
		if err == nil {
			break
		}
		logger.Printf("Attempt %d: Failed to connect to Redis: %v", i+1, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		logger.Fatalf("Failed to initialize Redis after %d attempts: %v", maxRetries, err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Printf("Error closing Redis connection: %v", err)
		}
	}()

	kafkaProducer, err := utils.NewKafkaProducer()
	if err != nil {
		logger.Printf("Kafka unavailable, client events disabled: %v", err)
		kafkaProducer = nil
	} else {
		defer kafkaProducer.Close()
	}

	esClient, err := utils.NewElasticsearchClient()
	if err != nil {
		logger.Printf("Elasticsearch unavailable, search projection disabled: %v", err)
		esClient = nil
	}

	clientRepo := repository.NewClientRepository(db, diag)
	appointmentRepo := repository.NewAppointmentRepository(db, diag)
	documentationRepo := repository.NewDocumentationRepository(db, diag)
	fileRepo := repository.NewFileRecordRepository(db, diag)

	generator := utils.NewIfaGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	dataService := service.NewDataService(clientRepo, appointmentRepo, documentationRepo, fileRepo, generator, diag)

	uploadStore := utils.NewUploadStore(os.Getenv("UPLOAD_DIR"))

	clientHandler := handlers.NewClientHandler(dataService, kafkaProducer)
	appointmentHandler := handlers.NewAppointmentHandler(dataService)
	documentationHandler := handlers.NewDocumentationHandler(dataService)
	fileHandler := handlers.NewFileHandler(dataService, uploadStore)
	searchHandler := handlers.NewSearchHandler(esClient, redisClient)

	if kafkaProducer != nil {
		clientConsumer := consumer.NewClientConsumer(redisClient, esClient)
		consumerCtx, cancelConsumer := context.WithCancel(context.Background())
		defer cancelConsumer()
		clientConsumer.Start(consumerCtx)
		defer clientConsumer.Stop()
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.PrometheusMetrics())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.ErrorHandler())

	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := redisClient.SetToCache(ctx, "healthcheck", "ping", 10*time.Second); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "degraded",
					"details": gin.H{"redis": "unavailable"},
					"error":   err.Error(),
				})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"details": gin.H{"redis": "available"},
			})
		})

		api.GET("/clients", clientHandler.ListClients)
		api.GET("/clients/form", clientHandler.NewClientForm)
		api.PUT("/clients", clientHandler.UpsertClient)
		api.DELETE("/clients/:ifa", clientHandler.DeleteClient)
		api.GET("/clients/:ifa/records", clientHandler.GetClientRecords)
		api.GET("/search/clients", searchHandler.SearchClients)

		api.GET("/appointments", appointmentHandler.ListAppointments)
		api.POST("/appointments", appointmentHandler.CreateAppointment)
		api.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
		api.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)

		api.GET("/documentations", documentationHandler.ListDocumentations)
		api.POST("/documentations", documentationHandler.CreateDocumentation)
		api.PUT("/documentations/:id", documentationHandler.UpdateDocumentation)
		api.DELETE("/documentations/:id", documentationHandler.DeleteDocumentation)

		api.GET("/clients/:ifa/files", fileHandler.ListFiles)
		api.POST("/clients/:ifa/files", fileHandler.UploadFile)
		api.DELETE("/files/:id", fileHandler.DeleteFile)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Printf("Server is running on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
