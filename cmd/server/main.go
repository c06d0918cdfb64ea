package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/cache"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/config"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/service"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/transport/rest"
)

// @title Registro Academic Progress API
// @version 1.0
// @description Classification, risk scoring and survey metrics for student records
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	cfg := config.Load()
	engineCfg := config.DefaultEngineConfig()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	studentRepo := repository.NewStudentRepo(db)
	cohortRepo := repository.NewCohortRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	participationRepo := repository.NewParticipationRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	academicRepo := repository.NewAcademicRecordRepo(db)

	// Initialize cache
	tokenCache := cache.NewTokenCache(rdb)

	// Initialize services
	classifier := service.NewPatternClassifier()
	surveySvc := service.NewSurveyService(surveyRepo)
	progressSvc := service.NewProgressService(studentRepo, cohortRepo, participationRepo, answerRepo, classifier)
	riskSvc := service.NewRiskService(studentRepo, cohortRepo, academicRepo, engineCfg)
	metricsSvc := service.NewMetricsService(surveySvc, participationRepo, answerRepo, engineCfg)
	dashboardSvc := service.NewDashboardService(progressSvc)
	participationSvc := service.NewParticipationService(surveySvc, studentRepo, participationRepo, answerRepo, tokenCache)

	container := &rest.Container{
		SurveyService:        surveySvc,
		MetricsService:       metricsSvc,
		RiskService:          riskSvc,
		DashboardService:     dashboardSvc,
		ProgressService:      progressSvc,
		ParticipationService: participationSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/dashboard/risk")
		log.Println("  GET  /v1/dashboard/cohorts")
		log.Println("  GET  /v1/students/{id}/classification")
		log.Println("  GET  /v1/students/{id}/risk")
		log.Println("  GET  /v1/surveys")
		log.Println("  GET  /v1/surveys/{id}/dashboard")
		log.Println("  POST /v1/surveys/{id}/tokens")
		log.Println("  POST /v1/participations")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
