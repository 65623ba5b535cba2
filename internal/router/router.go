package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bedefrunner/xai-learning-experience-platform/internal/handlers"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/middleware"
	"github.com/bedefrunner/xai-learning-experience-platform/internal/models"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	studentHandler *handlers.StudentHandler,
	subjectHandler *handlers.SubjectHandler,
	contentHandler *handlers.ContentHandler,
	pathHandler *handlers.LearningPathHandler,
	progressHandler *handlers.ProgressHandler,
	assessmentHandler *handlers.AssessmentHandler,
	attendanceHandler *handlers.AttendanceHandler,
	mentorHandler *handlers.MentorHandler,
	dashboardHandler *handlers.DashboardHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Student Routes ────
		r.Route("/students", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", studentHandler.List)
			r.Get("/{id}", studentHandler.Get)
			r.Get("/{id}/badges", studentHandler.Badges)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.RequireUserType(models.UserTypeEducator))
				r.Post("/", studentHandler.Create)
			})
		})

		// ──── Subject Routes ────
		r.Route("/subjects", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", subjectHandler.List)
			r.Get("/{id}", subjectHandler.Get)
		})

		// ──── Content Routes ────
		r.Route("/content", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", contentHandler.List)
			r.Get("/{id}", contentHandler.Get)
		})

		// ──── Learning Path Routes ────
		r.Route("/learning-paths", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", pathHandler.List)
			r.Get("/{id}", pathHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.RequireUserType(models.UserTypeEducator))
				r.Post("/", pathHandler.Create)
			})
		})

		// ──── Progress Routes ────
		r.Route("/progress", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", progressHandler.List)
			r.Put("/{id}", progressHandler.Update)
		})

		// ──── Assessment Routes ────
		r.Route("/assessments", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", assessmentHandler.List)
			r.Get("/{id}", assessmentHandler.Get)
			r.Post("/{id}/submit", assessmentHandler.Submit)
		})

		// ──── Attendance Routes ────
		r.Route("/attendance", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", attendanceHandler.List)
		})

		// ──── AI Mentor Routes ────
		r.Route("/ai-mentor", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/chat", mentorHandler.Chat)
			r.Get("/sessions", mentorHandler.Sessions)
		})

		// ──── Dashboard Routes ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/student/{studentID}", dashboardHandler.Student)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.RequireUserType(models.UserTypeEducator))
				r.Get("/educator", dashboardHandler.Educator)
			})
		})
	})

	return r
}
