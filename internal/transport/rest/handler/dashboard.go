package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/service"
)

// DashboardHandler handles the consolidated dashboard endpoints
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	riskSvc      *service.RiskService
	progressSvc  *service.ProgressService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService, riskSvc *service.RiskService, progressSvc *service.ProgressService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		riskSvc:      riskSvc,
		progressSvc:  progressSvc,
	}
}

// RiskDashboard handles GET /v1/dashboard/risk
func (h *DashboardHandler) RiskDashboard(w http.ResponseWriter, r *http.Request) {
	filters := model.RiskFilters{
		Career:    r.URL.Query().Get("career"),
		RiskLevel: model.RiskLevel(r.URL.Query().Get("riskLevel")),
		Status:    model.StudentStatus(r.URL.Query().Get("status")),
	}

	if raw := r.URL.Query().Get("cohort"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			writeServiceError(w, model.NewValidationError("cohort", "must be a year"))
			return
		}
		filters.CohortYear = year
	}

	dashboard, err := h.riskSvc.Dashboard(r.Context(), filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// CohortData handles GET /v1/dashboard/cohorts
func (h *DashboardHandler) CohortData(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeServiceError(w, model.NewValidationError("year", "must be a 4-digit year"))
			return
		}
		year = parsed
	}

	data, err := h.dashboardSvc.CohortCompleteData(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// StudentClassification handles GET /v1/students/{studentId}/classification
func (h *DashboardHandler) StudentClassification(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	classification, err := h.progressSvc.ClassifyStudent(r.Context(), studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classification)
}

// StudentRisk handles GET /v1/students/{studentId}/risk
func (h *DashboardHandler) StudentRisk(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	assessment, err := h.riskSvc.AssessStudent(r.Context(), studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}
