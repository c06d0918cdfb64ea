package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/service"
)

// ParticipationHandler handles the survey ingestion endpoints
type ParticipationHandler struct {
	participationSvc *service.ParticipationService
}

// NewParticipationHandler creates a new participation handler
func NewParticipationHandler(participationSvc *service.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participationSvc: participationSvc}
}

// IssueToken handles POST /v1/surveys/{surveyId}/tokens
func (h *ParticipationHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req struct {
		StudentID string `json:"studentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.participationSvc.IssueToken(r.Context(), surveyID, req.StudentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, token)
}

// Submit handles POST /v1/participations
func (h *ParticipationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participation, err := h.participationSvc.Submit(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, participation)
}
