package service

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/config"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
)

// MetricsService aggregates per-survey metrics, insights and charts.
// Each dashboard request re-reads the survey's full answer corpus and
// recomputes from scratch.
type MetricsService struct {
	surveySvc         *SurveyService
	participationRepo repository.ParticipationRepo
	answerRepo        repository.AnswerRepo
	cfg               *config.EngineConfig
}

// NewMetricsService creates a new metrics service
func NewMetricsService(
	surveySvc *SurveyService,
	participationRepo repository.ParticipationRepo,
	answerRepo repository.AnswerRepo,
	cfg *config.EngineConfig,
) *MetricsService {
	return &MetricsService{
		surveySvc:         surveySvc,
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		cfg:               cfg,
	}
}

// Dashboard builds the consolidated payload for one survey
func (s *MetricsService) Dashboard(ctx context.Context, surveyID string) (*model.SurveyDashboard, error) {
	survey, err := s.surveySvc.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	participations, err := s.participationRepo.GetBySurvey(ctx, surveyID)
	if err != nil {
		return nil, model.NewComputationError("survey dashboard", err)
	}
	answers, err := s.answerRepo.GetBySurvey(ctx, surveyID)
	if err != nil {
		return nil, model.NewComputationError("survey dashboard", err)
	}

	basic := basicMetricsOf(survey, participations, answers)
	questions := analyzeQuestions(survey, answers)

	metricType := MetricType(survey)
	specific, components := analyzeByType(metricType, survey, answers, s.cfg)

	insights, recommendations := generateInsights(metricType, basic, specific)
	overall := s.overallScore(basic, components)

	return &model.SurveyDashboard{
		Survey:          survey,
		InferredType:    metricType,
		BasicMetrics:    basic,
		SpecificMetrics: specific,
		Questions:       questions,
		Charts:          buildCharts(basic, questions),
		Insights:        insights,
		Recommendations: recommendations,
		OverallScore:    overall,
	}, nil
}

func basicMetricsOf(survey *model.Survey, participations []*model.Participation, answers []*model.Answer) model.BasicMetrics {
	metrics := model.BasicMetrics{
		QuestionCount:      len(survey.Questions),
		ParticipationTotal: len(participations),
		ResponseCount:      len(answers),
	}

	participants := make(map[string]bool)
	for _, p := range participations {
		participants[p.StudentID] = true
		switch p.Status {
		case model.ParticipationCompleted:
			metrics.Completed++
		case model.ParticipationPending:
			metrics.Pending++
		}
	}
	metrics.UniqueParticipants = len(participants)

	if metrics.ParticipationTotal > 0 {
		metrics.CompletionRate = float64(metrics.Completed) / float64(metrics.ParticipationTotal) * 100
	}
	if metrics.QuestionCount > 0 && metrics.ParticipationTotal > 0 {
		metrics.ResponseRate = float64(metrics.ResponseCount) / float64(metrics.QuestionCount*metrics.ParticipationTotal) * 100
	}
	return metrics
}

// topicBuckets assign a rough topic tag per question, first hit wins
var topicBuckets = []struct {
	topic    string
	keywords []string
}{
	{"documentacion", []string{"documento", "acta", "certificado", "curp", "comprobante", "expediente"}},
	{"avance", []string{"avance", "progreso", "cuatrimestre", "semestre", "materias"}},
	{"satisfaccion", []string{"satisf", "contento", "gusto"}},
	{"evaluacion", []string{"califica", "evalua", "puntua", "promedio"}},
	{"empleabilidad", []string{"empleo", "trabajo", "contrat", "labora"}},
	{"competencias", []string{"competencia", "habilidad", "desempeño"}},
	{"recomendacion", []string{"recomend"}},
	{"asistencia", []string{"asistencia", "asistir", "puntualidad"}},
	{"problemas", []string{"problema", "incidente", "dificultad"}},
}

func questionTopic(title string) string {
	lower := strings.ToLower(title)
	for _, bucket := range topicBuckets {
		if containsAny(lower, bucket.keywords) {
			return bucket.topic
		}
	}
	return "general"
}

var embeddedNumberRe = regexp.MustCompile(`-?[0-9]+(?:[.,][0-9]+)?`)

// firstNumber extracts the first number embedded in an answer
func firstNumber(text string) (float64, bool) {
	match := embeddedNumberRe.FindString(text)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func analyzeQuestions(survey *model.Survey, answers []*model.Answer) []model.QuestionAnalysis {
	byQuestion := make(map[string][]*model.Answer)
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}

	analyses := make([]model.QuestionAnalysis, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		qa := model.QuestionAnalysis{
			QuestionID: q.ID,
			Title:      q.Title,
			Type:       q.Type,
			Topic:      questionTopic(q.Title),
		}

		counts := make(map[string]int)
		var values []float64
		for _, a := range byQuestion[q.ID] {
			text := strings.TrimSpace(a.Text)
			if text == "" {
				continue
			}
			qa.ResponseCount++
			counts[strings.ToLower(text)]++
			if v, ok := firstNumber(text); ok {
				values = append(values, v)
			}
		}

		for value, count := range counts {
			qa.Frequencies = append(qa.Frequencies, model.FrequencyCount{Value: value, Count: count})
		}
		// Descending by count; alphabetical tie-break keeps the
		// histogram deterministic across recomputation.
		sort.Slice(qa.Frequencies, func(i, j int) bool {
			if qa.Frequencies[i].Count != qa.Frequencies[j].Count {
				return qa.Frequencies[i].Count > qa.Frequencies[j].Count
			}
			return qa.Frequencies[i].Value < qa.Frequencies[j].Value
		})

		if len(values) > 0 {
			qa.Numeric = numericStatsOf(values)
		}
		analyses = append(analyses, qa)
	}
	return analyses
}

func numericStatsOf(values []float64) *model.NumericStats {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdDev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return &model.NumericStats{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}
}

func (s *MetricsService) overallScore(basic model.BasicMetrics, components []scoreComponent) model.OverallScore {
	values := []float64{basic.CompletionRate}
	for _, c := range components {
		values = append(values, c.value)
	}
	mean, _ := stats.Mean(values)

	label := "NECESITA MEJORA"
	switch {
	case mean >= float64(s.cfg.TierExcelente):
		label = "EXCELENTE"
	case mean >= float64(s.cfg.TierMuyBueno):
		label = "MUY BUENO"
	case mean >= float64(s.cfg.TierBueno):
		label = "BUENO"
	case mean >= float64(s.cfg.TierRegular):
		label = "REGULAR"
	}
	return model.OverallScore{Score: mean, Label: label}
}

func buildCharts(basic model.BasicMetrics, questions []model.QuestionAnalysis) []model.Chart {
	charts := []model.Chart{
		{
			Type:   "pie",
			Title:  "Estado de participaciones",
			Labels: []string{"Completadas", "Pendientes"},
			Values: []float64{float64(basic.Completed), float64(basic.Pending)},
		},
	}

	for _, q := range questions {
		if len(q.Frequencies) == 0 {
			continue
		}
		chart := model.Chart{Type: "bar", Title: q.Title}
		limit := len(q.Frequencies)
		if limit > 5 {
			limit = 5
		}
		for _, f := range q.Frequencies[:limit] {
			chart.Labels = append(chart.Labels, f.Value)
			chart.Values = append(chart.Values, float64(f.Count))
		}
		charts = append(charts, chart)
	}
	return charts
}
