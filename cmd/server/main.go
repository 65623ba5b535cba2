package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/config"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/database"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/handlers"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/middleware"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/repository"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/router"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/services"
)

func main() {
	log.Println("🚀 Starting Learning Experience Platform...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	studentRepo := repository.NewStudentRepo(pool)
	educatorRepo := repository.NewEducatorRepo(pool)
	subjectRepo := repository.NewSubjectRepo(pool)
	contentRepo := repository.NewContentRepo(pool)
	pathRepo := repository.NewLearningPathRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	assessmentRepo := repository.NewAssessmentRepo(pool)
	attendanceRepo := repository.NewAttendanceRepo(pool)
	mentorRepo := repository.NewMentorRepo(pool)

	// ──── Step 5: Initialize Grok Client ────
	grokService := services.NewGrokService(cfg.XAIBaseURL, cfg.XAIAPIKey, cfg.XAIModel, cfg.XAIConcurrentReqs)
	log.Println("✓ Grok client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, studentRepo, educatorRepo, redisClient, jwtAuth)
	studentService := services.NewStudentService(studentRepo, userRepo)
	pathService := services.NewLearningPathService(pathRepo, studentRepo, subjectRepo, grokService)
	assessmentService := services.NewAssessmentService(assessmentRepo, studentRepo, progressRepo, grokService)
	mentorService := services.NewMentorService(grokService, studentRepo, pathRepo, contentRepo, progressRepo, mentorRepo, redisClient)
	dashboardService := services.NewDashboardService(studentRepo, pathRepo, progressRepo, assessmentRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(studentService)
	subjectHandler := handlers.NewSubjectHandler(subjectRepo)
	contentHandler := handlers.NewContentHandler(contentRepo)
	pathHandler := handlers.NewLearningPathHandler(pathRepo, pathService)
	progressHandler := handlers.NewProgressHandler(progressRepo)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentRepo, assessmentService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo)
	mentorHandler := handlers.NewMentorHandler(mentorService, mentorRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		studentHandler,
		subjectHandler,
		contentHandler,
		pathHandler,
		progressHandler,
		assessmentHandler,
		attendanceHandler,
		mentorHandler,
		dashboardHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Learning Experience Platform ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
