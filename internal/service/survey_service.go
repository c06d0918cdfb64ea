package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
)

// Survey metric keys produced by type inference
const (
	MetricTypeDocumentos  = "documentos"
	MetricTypeSeguimiento = "seguimiento"
	MetricTypeFinal       = "final"
	MetricTypeEmpresa     = "evaluacion_empresa"
	MetricTypeRezago      = "rezago"
	MetricTypeDesconocido = "desconocido"
)

// typeInference is the priority-ordered title keyword table
var typeInference = []struct {
	keyword string
	metric  string
}{
	{"documento", MetricTypeDocumentos},
	{"seguimiento", MetricTypeSeguimiento},
	{"final", MetricTypeFinal},
	{"empresa", MetricTypeEmpresa},
	{"rezago", MetricTypeRezago},
}

// explicit type tags map straight to their metric key
var typeToMetric = map[model.SurveyType]string{
	model.SurveyTypeDocumento:   MetricTypeDocumentos,
	model.SurveyTypeSeguimiento: MetricTypeSeguimiento,
	model.SurveyTypeFinal:       MetricTypeFinal,
	model.SurveyTypeEmpresa:     MetricTypeEmpresa,
}

// InferSurveyType maps a survey title to its metric key. First keyword
// hit in priority order wins; unmatched titles are "desconocido".
func InferSurveyType(title string) string {
	lower := strings.ToLower(title)
	for _, entry := range typeInference {
		if strings.Contains(lower, entry.keyword) {
			return entry.metric
		}
	}
	return MetricTypeDesconocido
}

// MetricType resolves the metric key for a survey: the stored type tag
// wins when set, title inference is the fallback.
func MetricType(survey *model.Survey) string {
	if metric, ok := typeToMetric[survey.Type]; ok {
		return metric
	}
	return InferSurveyType(survey.Title)
}

// SurveyService exposes survey reads to the dashboards
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
	}
}

// GetByID retrieves a survey or a NotFoundError
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, model.NewValidationError("surveyId", "is not a valid identifier")
	}
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, model.NewComputationError("survey lookup", err)
	}
	if survey == nil {
		return nil, model.NewNotFoundError("survey", id)
	}
	return survey, nil
}

// List returns all surveys
func (s *SurveyService) List(ctx context.Context) ([]*model.Survey, error) {
	return s.surveyRepo.List(ctx)
}
