package service

import (
	"fmt"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// Insight thresholds. Fixed rules per survey type; fully deterministic
// given the metrics.
const (
	completionWarnBelow    = 70.0
	completionGoodAbove    = 90.0
	responseRateWarnBelow  = 50.0
	documentsWarnBelow     = 80.0
	hoursWarnBelow         = 50.0
	employabilityWarnBelow = 50.0
	npsGoodAbove           = 50.0
	satisfactionGoodAbove  = 80.0
	satisfactionWarnBelow  = 50.0
)

// generateInsights applies the per-type threshold rules in a fixed
// order so the output lists are stable.
func generateInsights(metricType string, basic model.BasicMetrics, specific model.SpecificMetrics) ([]model.Insight, []string) {
	var insights []model.Insight
	var recommendations []string

	warn := func(message string) {
		insights = append(insights, model.Insight{Level: "advertencia", Message: message})
	}
	good := func(message string) {
		insights = append(insights, model.Insight{Level: "positivo", Message: message})
	}
	recommend := func(message string) {
		recommendations = append(recommendations, message)
	}

	// Completion rules apply to every survey type
	if basic.ParticipationTotal > 0 {
		switch {
		case basic.CompletionRate < completionWarnBelow:
			warn(fmt.Sprintf("Baja tasa de finalización (%.1f%%)", basic.CompletionRate))
			recommend("Enviar recordatorios urgentes a los participantes pendientes")
		case basic.CompletionRate >= completionGoodAbove:
			good(fmt.Sprintf("Excelente tasa de finalización (%.1f%%)", basic.CompletionRate))
		}
		if basic.ResponseRate > 0 && basic.ResponseRate < responseRateWarnBelow {
			warn("Muchas preguntas quedaron sin responder")
			recommend("Revisar la longitud y claridad del cuestionario")
		}
	}

	switch metricType {
	case MetricTypeDocumentos:
		if m := specific.Documentos; m != nil && len(m.ByDocument) > 0 {
			if m.CompletionRate < documentsWarnBelow {
				warn(fmt.Sprintf("Documentación incompleta (%.1f%% entregada)", m.CompletionRate))
				recommend("Solicitar los documentos faltantes a los estudiantes rezagados")
			} else if m.CompletionRate >= 100 {
				good("Toda la documentación fue entregada")
			}
		}
	case MetricTypeSeguimiento:
		if m := specific.Seguimiento; m != nil {
			if m.HoursCompliance > 0 && m.HoursCompliance < hoursWarnBelow {
				warn(fmt.Sprintf("Horas de estadía por debajo de lo requerido (%.0f de %d)", m.AverageHours, m.RequiredHours))
				recommend("Verificar el plan de horas con las empresas receptoras")
			}
			if m.Incidents > 0 {
				warn(fmt.Sprintf("Se reportaron %d incidentes durante la estadía", m.Incidents))
				recommend("Dar seguimiento individual a los incidentes reportados")
			}
			if m.AttendanceRate >= completionGoodAbove {
				good(fmt.Sprintf("Asistencia sobresaliente (%.1f%%)", m.AttendanceRate))
			}
		}
	case MetricTypeFinal:
		if m := specific.Final; m != nil {
			if m.EmploymentRate > 0 && m.EmploymentRate < employabilityWarnBelow {
				warn(fmt.Sprintf("Empleabilidad baja (%.1f%%)", m.EmploymentRate))
				recommend("Reforzar la vinculación laboral con empresas aliadas")
			}
			if m.NPS > npsGoodAbove {
				good(fmt.Sprintf("Alta disposición a recomendar el programa (NPS %.0f)", m.NPS))
			}
			if m.GradeAverage >= 9 {
				good(fmt.Sprintf("Calificación promedio sobresaliente (%.1f)", m.GradeAverage))
			}
		}
	case MetricTypeEmpresa:
		if m := specific.Empresa; m != nil && m.Satisfied+m.Neutral+m.Unsatisfied > 0 {
			if m.SatisfactionRate >= satisfactionGoodAbove {
				good(fmt.Sprintf("Alta satisfacción de las empresas (%.1f%%)", m.SatisfactionRate))
			} else if m.SatisfactionRate < satisfactionWarnBelow {
				warn(fmt.Sprintf("Satisfacción de las empresas baja (%.1f%%)", m.SatisfactionRate))
				recommend("Agendar reuniones con las empresas menos satisfechas")
			}
		}
	}

	return insights, recommendations
}
