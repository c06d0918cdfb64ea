package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/service"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	SurveyService        *service.SurveyService
	MetricsService       *service.MetricsService
	RiskService          *service.RiskService
	DashboardService     *service.DashboardService
	ProgressService      *service.ProgressService
	ParticipationService *service.ParticipationService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	dashboardHandler := handler.NewDashboardHandler(c.DashboardService, c.RiskService, c.ProgressService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, c.MetricsService)
	participationHandler := handler.NewParticipationHandler(c.ParticipationService)

	r.Use(corsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/dashboard/risk", dashboardHandler.RiskDashboard).Methods("GET", "OPTIONS")
	v1.HandleFunc("/dashboard/cohorts", dashboardHandler.CohortData).Methods("GET", "OPTIONS")
	v1.HandleFunc("/students/{studentId}/classification", dashboardHandler.StudentClassification).Methods("GET", "OPTIONS")
	v1.HandleFunc("/students/{studentId}/risk", dashboardHandler.StudentRisk).Methods("GET", "OPTIONS")

	v1.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/surveys/{surveyId}/dashboard", surveyHandler.Dashboard).Methods("GET", "OPTIONS")

	v1.HandleFunc("/surveys/{surveyId}/tokens", participationHandler.IssueToken).Methods("POST", "OPTIONS")
	v1.HandleFunc("/participations", participationHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
