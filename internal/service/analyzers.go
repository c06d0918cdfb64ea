package service

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/config"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// scoreComponent is a percentage that feeds the overall survey score
type scoreComponent struct {
	name  string
	value float64
}

// typeAnalyzer computes the type-specific metric block for a survey.
// One analyzer per inferred type keeps the rule tables testable in
// isolation instead of five duplicated code paths.
type typeAnalyzer interface {
	analyze(survey *model.Survey, answers []*model.Answer, cfg *config.EngineConfig) (model.SpecificMetrics, []scoreComponent)
}

var analyzers = map[string]typeAnalyzer{
	MetricTypeDocumentos:  documentAnalyzer{},
	MetricTypeSeguimiento: followUpAnalyzer{},
	MetricTypeFinal:       finalAnalyzer{},
	MetricTypeEmpresa:     companyAnalyzer{},
}

// analyzeByType dispatches to the analyzer for the inferred type.
// Types without specific metrics (rezago, desconocido) yield an empty
// block.
func analyzeByType(metricType string, survey *model.Survey, answers []*model.Answer, cfg *config.EngineConfig) (model.SpecificMetrics, []scoreComponent) {
	analyzer, ok := analyzers[metricType]
	if !ok {
		return model.SpecificMetrics{}, nil
	}
	return analyzer.analyze(survey, answers, cfg)
}

var deliveredLexicon = []string{"entregado", "completo", "completado", "listo", "cubierto", "sí", "si", "yes"}

var affirmativeLexicon = []string{"sí", "si", "yes", "claro", "por supuesto", "definitivamente"}

func isDelivered(text string) bool {
	return containsAny(strings.ToLower(text), deliveredLexicon)
}

func isAffirmative(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(lower, "no") {
		return false
	}
	return containsAny(lower, affirmativeLexicon)
}

// documentAnalyzer computes delivery completion per document sub-type
type documentAnalyzer struct{}

var documentTypes = []struct {
	name     string
	keywords []string
}{
	{"Acta de nacimiento", []string{"acta"}},
	{"Certificado", []string{"certificado"}},
	{"CURP", []string{"curp"}},
	{"Fotografías", []string{"foto"}},
	{"Comprobante de pago", []string{"comprobante"}},
	{"Título", []string{"título", "titulo"}},
	{"Cédula", []string{"cédula", "cedula"}},
}

func (documentAnalyzer) analyze(survey *model.Survey, answers []*model.Answer, cfg *config.EngineConfig) (model.SpecificMetrics, []scoreComponent) {
	metrics := &model.DocumentMetrics{}
	delivered, total := 0, 0

	for _, doc := range documentTypes {
		completion := model.DocumentCompletion{Document: doc.name}
		for _, a := range answers {
			if !containsAny(strings.ToLower(a.QuestionTitle), doc.keywords) {
				continue
			}
			completion.Total++
			if isDelivered(a.Text) {
				completion.Delivered++
			}
		}
		if completion.Total == 0 {
			continue
		}
		completion.Percentage = float64(completion.Delivered) / float64(completion.Total) * 100
		metrics.ByDocument = append(metrics.ByDocument, completion)
		delivered += completion.Delivered
		total += completion.Total
	}

	if total > 0 {
		metrics.CompletionRate = float64(delivered) / float64(total) * 100
	}

	var components []scoreComponent
	if total > 0 {
		components = append(components, scoreComponent{"completitud_documentos", metrics.CompletionRate})
	}
	return model.SpecificMetrics{Documentos: metrics}, components
}

// followUpAnalyzer computes progress, attendance, stay hours and
// incident figures for follow-up surveys
type followUpAnalyzer struct{}

var onTrackLexicon = []string{"en tiempo", "al corriente", "al día", "buen avance", "bien", "excelente"}
var delayedLexicon = []string{"atrasado", "atraso", "retraso", "rezago"}
var incidentClearLexicon = []string{"no", "ninguno", "ninguna", "sin incidentes", "nada"}

func (followUpAnalyzer) analyze(survey *model.Survey, answers []*model.Answer, cfg *config.EngineConfig) (model.SpecificMetrics, []scoreComponent) {
	metrics := &model.FollowUpMetrics{RequiredHours: cfg.RequiredStayHours}

	attended, attendanceTotal := 0, 0
	var hours []float64

	for _, a := range answers {
		title := strings.ToLower(a.QuestionTitle)
		text := strings.ToLower(a.Text)

		switch {
		case strings.Contains(title, "avance") || strings.Contains(title, "progreso"):
			if containsAny(text, delayedLexicon) {
				metrics.Delayed++
			} else if containsAny(text, onTrackLexicon) {
				metrics.OnTrack++
			}
		case strings.Contains(title, "asistencia"):
			attendanceTotal++
			if isAffirmative(text) || containsAny(text, []string{"siempre", "completa", "regular"}) {
				attended++
			}
		case strings.Contains(title, "hora"):
			if v, ok := firstNumber(text); ok {
				hours = append(hours, v)
			}
		case strings.Contains(title, "incidente") || strings.Contains(title, "problema"):
			if !containsAny(strings.TrimSpace(text), incidentClearLexicon) && strings.TrimSpace(text) != "" {
				metrics.Incidents++
			}
		}
	}

	if attendanceTotal > 0 {
		metrics.AttendanceRate = float64(attended) / float64(attendanceTotal) * 100
	}
	if len(hours) > 0 {
		metrics.AverageHours, _ = stats.Mean(hours)
		compliance := metrics.AverageHours / float64(cfg.RequiredStayHours) * 100
		if compliance > 100 {
			compliance = 100
		}
		metrics.HoursCompliance = compliance
	}

	var components []scoreComponent
	if attendanceTotal > 0 {
		components = append(components, scoreComponent{"asistencia", metrics.AttendanceRate})
	}
	if len(hours) > 0 {
		components = append(components, scoreComponent{"horas", metrics.HoursCompliance})
	}
	return model.SpecificMetrics{Seguimiento: metrics}, components
}

// finalAnalyzer computes grade, competency, employment and NPS-style
// recommendation metrics for final surveys
type finalAnalyzer struct{}

var detractorLexicon = []string{"no", "nunca", "jamás"}

func (finalAnalyzer) analyze(survey *model.Survey, answers []*model.Answer, cfg *config.EngineConfig) (model.SpecificMetrics, []scoreComponent) {
	metrics := &model.FinalMetrics{}

	var grades, competencies []float64
	employed, employmentTotal := 0, 0
	recommendTotal := 0

	for _, a := range answers {
		title := strings.ToLower(a.QuestionTitle)
		text := strings.ToLower(strings.TrimSpace(a.Text))

		switch {
		case strings.Contains(title, "recomend"):
			recommendTotal++
			if isAffirmative(text) || strings.Contains(text, "recomiendo") {
				metrics.Promoters++
			} else if containsAny(text, detractorLexicon) {
				metrics.Detractors++
			}
		case strings.Contains(title, "competencia") || strings.Contains(title, "habilidad"):
			if v, ok := firstNumber(text); ok {
				competencies = append(competencies, v)
			}
		case strings.Contains(title, "califica") || strings.Contains(title, "promedio"):
			if v, ok := firstNumber(text); ok {
				grades = append(grades, v)
			}
		case strings.Contains(title, "empleo") || strings.Contains(title, "trabajo") || strings.Contains(title, "labora"):
			employmentTotal++
			if isAffirmative(text) || containsAny(text, []string{"contratado", "trabajando", "empleado"}) {
				employed++
			}
		}
	}

	if len(grades) > 0 {
		metrics.GradeAverage, _ = stats.Mean(grades)
	}
	if len(competencies) > 0 {
		metrics.CompetencyAverage, _ = stats.Mean(competencies)
	}
	if employmentTotal > 0 {
		metrics.EmploymentRate = float64(employed) / float64(employmentTotal) * 100
	}
	if recommendTotal > 0 {
		metrics.NPS = float64(metrics.Promoters-metrics.Detractors) / float64(recommendTotal) * 100
	}

	var components []scoreComponent
	if len(grades) > 0 {
		components = append(components, scoreComponent{"calificacion", metrics.GradeAverage * 10})
	}
	if len(competencies) > 0 {
		components = append(components, scoreComponent{"competencias", metrics.CompetencyAverage * 10})
	}
	if employmentTotal > 0 {
		components = append(components, scoreComponent{"empleabilidad", metrics.EmploymentRate})
	}
	return model.SpecificMetrics{Final: metrics}, components
}

// companyAnalyzer builds the competency leaderboard and satisfaction
// buckets for company evaluations
type companyAnalyzer struct{}

var satisfiedLexicon = []string{"muy satisfecho", "satisfecho", "excelente", "muy bueno", "bueno"}
var unsatisfiedLexicon = []string{"insatisfecho", "malo", "deficiente", "pésimo", "pesimo"}

func (companyAnalyzer) analyze(survey *model.Survey, answers []*model.Answer, cfg *config.EngineConfig) (model.SpecificMetrics, []scoreComponent) {
	metrics := &model.CompanyMetrics{}

	type compBucket struct {
		sum   float64
		count int
	}
	competencies := make(map[string]*compBucket)
	satisfactionTotal := 0

	for _, a := range answers {
		title := strings.ToLower(a.QuestionTitle)
		text := strings.ToLower(strings.TrimSpace(a.Text))

		if strings.Contains(title, "satisf") {
			satisfactionTotal++
			switch {
			case containsAny(text, unsatisfiedLexicon):
				metrics.Unsatisfied++
			case containsAny(text, satisfiedLexicon):
				metrics.Satisfied++
			default:
				if v, ok := firstNumber(text); ok {
					switch {
					case v >= 8:
						metrics.Satisfied++
					case v >= 6:
						metrics.Neutral++
					default:
						metrics.Unsatisfied++
					}
				} else {
					metrics.Neutral++
				}
			}
			continue
		}

		if strings.Contains(title, "competencia") || strings.Contains(title, "evalúa") || strings.Contains(title, "evalua") {
			if v, ok := firstNumber(text); ok {
				bucket := competencies[a.QuestionTitle]
				if bucket == nil {
					bucket = &compBucket{}
					competencies[a.QuestionTitle] = bucket
				}
				bucket.sum += v
				bucket.count++
			}
		}
	}

	for name, bucket := range competencies {
		metrics.Competencies = append(metrics.Competencies, model.CompetencyScore{
			Name:     name,
			Average:  bucket.sum / float64(bucket.count),
			Mentions: bucket.count,
		})
	}
	sort.Slice(metrics.Competencies, func(i, j int) bool {
		if metrics.Competencies[i].Average != metrics.Competencies[j].Average {
			return metrics.Competencies[i].Average > metrics.Competencies[j].Average
		}
		return metrics.Competencies[i].Name < metrics.Competencies[j].Name
	})

	if satisfactionTotal > 0 {
		metrics.SatisfactionRate = float64(metrics.Satisfied) / float64(satisfactionTotal) * 100
	}

	var components []scoreComponent
	if satisfactionTotal > 0 {
		components = append(components, scoreComponent{"satisfaccion", metrics.SatisfactionRate})
	}
	if len(metrics.Competencies) > 0 {
		total := 0.0
		for _, c := range metrics.Competencies {
			total += c.Average
		}
		components = append(components, scoreComponent{"evaluacion", total / float64(len(metrics.Competencies)) * 10})
	}
	return model.SpecificMetrics{Empresa: metrics}, components
}
