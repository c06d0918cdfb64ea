package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/config"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
)

// RiskService scores academic risk from numeric grade records. The
// path is fully numeric and independent of the text classification.
type RiskService struct {
	studentRepo  repository.StudentRepo
	cohortRepo   repository.CohortRepo
	academicRepo repository.AcademicRecordRepo
	cfg          *config.EngineConfig
}

// NewRiskService creates a new risk service
func NewRiskService(
	studentRepo repository.StudentRepo,
	cohortRepo repository.CohortRepo,
	academicRepo repository.AcademicRecordRepo,
	cfg *config.EngineConfig,
) *RiskService {
	return &RiskService{
		studentRepo:  studentRepo,
		cohortRepo:   cohortRepo,
		academicRepo: academicRepo,
		cfg:          cfg,
	}
}

// Assess computes the weighted risk score for one student from their
// academic history. Ungraded rows (grade <= 0) are ignored entirely.
func (s *RiskService) Assess(student *model.Student, records []*model.AcademicRecord) model.RiskAssessment {
	assessment := model.RiskAssessment{
		StudentID:   student.ID,
		Matricula:   student.Matricula,
		Name:        student.Name,
		Career:      student.Career,
		Status:      student.Status,
		CurrentTerm: student.CurrentTerm,
		Level:       model.RiskBajo,
	}

	var grades []float64
	failed := 0
	borderline := 0
	extra := 0
	for _, r := range records {
		if !r.Graded() {
			continue
		}
		grades = append(grades, r.FinalGrade)
		if r.Failed() {
			failed++
		}
		if r.FinalGrade >= 6 && r.FinalGrade < 7 {
			borderline++
		}
		if r.ExtraGrade > 0 {
			extra++
		}
	}

	if len(grades) == 0 {
		assessment.Factors = []string{"Sin registros de calificaciones"}
		return assessment
	}

	average, _ := stats.Mean(grades)
	assessment.Average = average
	assessment.GradedCourses = len(grades)
	assessment.FailedCount = failed
	assessment.ExtraCount = extra

	score := 0
	var factors []string

	// Factor 1: average grade, weight 35
	switch {
	case average < 6:
		score += 35
		factors = append(factors, fmt.Sprintf("Promedio general crítico (%.2f)", average))
	case average < 7:
		score += 25
		factors = append(factors, fmt.Sprintf("Promedio general bajo (%.2f)", average))
	case average < 8:
		score += 15
		factors = append(factors, fmt.Sprintf("Promedio general regular (%.2f)", average))
	}

	// Factor 2: failed courses, weight 25
	switch {
	case failed >= 3:
		score += 25
		factors = append(factors, fmt.Sprintf("%d materias reprobadas", failed))
	case failed == 2:
		score += 18
		factors = append(factors, "2 materias reprobadas")
	case failed == 1:
		score += 10
		factors = append(factors, "1 materia reprobada")
	}

	// Factor 3: borderline grades in [6,7), weight 20
	switch {
	case borderline >= 3:
		score += 20
		factors = append(factors, fmt.Sprintf("%d calificaciones entre 6 y 7", borderline))
	case borderline == 2:
		score += 12
		factors = append(factors, "2 calificaciones entre 6 y 7")
	case borderline == 1:
		score += 6
		factors = append(factors, "1 calificación entre 6 y 7")
	}

	// Factor 4: advanced term with below-average grades, weight 10
	switch {
	case student.CurrentTerm >= 7 && average < 7.5:
		score += 10
		factors = append(factors, "Cuatrimestre avanzado con promedio bajo")
	case student.CurrentTerm >= 5 && average < 7:
		score += 6
		factors = append(factors, "Cuatrimestre intermedio con promedio bajo")
	}

	// Factor 5: extraordinary exams, weight 10
	switch {
	case extra >= 2:
		score += 10
		factors = append(factors, fmt.Sprintf("%d materias acreditadas en extraordinario", extra))
	case extra == 1:
		score += 5
		factors = append(factors, "1 materia acreditada en extraordinario")
	}

	if score > 100 {
		score = 100
	}
	assessment.Score = score
	assessment.Factors = factors
	assessment.Level = s.level(score)

	return assessment
}

func (s *RiskService) level(score int) model.RiskLevel {
	switch {
	case score >= s.cfg.RiskHighThreshold:
		return model.RiskAlto
	case score >= s.cfg.RiskMediumThreshold:
		return model.RiskMedio
	default:
		return model.RiskBajo
	}
}

// AssessStudent recomputes the risk assessment for one student
func (s *RiskService) AssessStudent(ctx context.Context, studentID string) (*model.RiskAssessment, error) {
	if studentID == "" {
		return nil, model.NewValidationError("studentId", "is required")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, model.NewComputationError("risk assessment", err)
	}
	if student == nil {
		return nil, model.NewNotFoundError("student", studentID)
	}

	records, err := s.academicRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, model.NewComputationError("risk assessment", err)
	}

	assessment := s.Assess(student, records)
	if cohort, err := s.cohortRepo.GetByID(ctx, student.CohortID); err == nil && cohort != nil {
		assessment.CohortYear = cohort.Year
	}
	return &assessment, nil
}

// Dashboard recomputes every per-student assessment, applies filters
// before grouping and derives cohort aggregates from the same pass.
// Nothing is read from partial or cached sums.
func (s *RiskService) Dashboard(ctx context.Context, filters model.RiskFilters) (*model.RiskDashboard, error) {
	if filters.RiskLevel != "" {
		switch filters.RiskLevel {
		case model.RiskBajo, model.RiskMedio, model.RiskAlto:
		default:
			return nil, model.NewValidationError("riskLevel", "must be bajo, medio or alto")
		}
	}

	students, err := s.studentRepo.List(ctx, model.StudentFilter{
		Status: filters.Status,
		Career: filters.Career,
	})
	if err != nil {
		return nil, model.NewComputationError("risk dashboard", err)
	}

	cohorts, err := s.cohortRepo.List(ctx)
	if err != nil {
		return nil, model.NewComputationError("risk dashboard", err)
	}
	cohortByID := make(map[string]*model.Cohort, len(cohorts))
	for _, cohort := range cohorts {
		cohortByID[cohort.ID] = cohort
	}

	records, err := s.academicRepo.GetAll(ctx)
	if err != nil {
		return nil, model.NewComputationError("risk dashboard", err)
	}
	recordsByStudent := make(map[string][]*model.AcademicRecord)
	for _, r := range records {
		recordsByStudent[r.StudentID] = append(recordsByStudent[r.StudentID], r)
	}

	dashboard := &model.RiskDashboard{}
	cohortBuckets := make(map[int]*model.CohortRisk)
	scoreSum := 0

	for _, student := range students {
		cohort := cohortByID[student.CohortID]
		if filters.CohortYear != 0 && (cohort == nil || cohort.Year != filters.CohortYear) {
			continue
		}

		assessment := s.Assess(student, recordsByStudent[student.ID])
		if cohort != nil {
			assessment.CohortYear = cohort.Year
		}
		if filters.RiskLevel != "" && assessment.Level != filters.RiskLevel {
			continue
		}

		dashboard.Students = append(dashboard.Students, assessment)
		scoreSum += assessment.Score

		switch assessment.Level {
		case model.RiskBajo:
			dashboard.Statistics.Low++
		case model.RiskMedio:
			dashboard.Statistics.Medium++
		case model.RiskAlto:
			dashboard.Statistics.High++
		}

		bucket := cohortBuckets[assessment.CohortYear]
		if bucket == nil {
			bucket = &model.CohortRisk{CohortYear: assessment.CohortYear}
			cohortBuckets[assessment.CohortYear] = bucket
		}
		bucket.Total++
		switch assessment.Level {
		case model.RiskBajo:
			bucket.Low++
		case model.RiskMedio:
			bucket.Medium++
		case model.RiskAlto:
			bucket.High++
		}
	}

	total := len(dashboard.Students)
	dashboard.Statistics.Total = total
	if total > 0 {
		dashboard.Statistics.LowPercent = float64(dashboard.Statistics.Low) / float64(total) * 100
		dashboard.Statistics.MediumPercent = float64(dashboard.Statistics.Medium) / float64(total) * 100
		dashboard.Statistics.HighPercent = float64(dashboard.Statistics.High) / float64(total) * 100
		dashboard.Statistics.AverageScore = float64(scoreSum) / float64(total)
	}

	sort.Slice(dashboard.Students, func(i, j int) bool {
		if dashboard.Students[i].Score != dashboard.Students[j].Score {
			return dashboard.Students[i].Score > dashboard.Students[j].Score
		}
		return dashboard.Students[i].Matricula < dashboard.Students[j].Matricula
	})

	for _, bucket := range cohortBuckets {
		dashboard.Cohorts = append(dashboard.Cohorts, *bucket)
	}
	sort.Slice(dashboard.Cohorts, func(i, j int) bool {
		return dashboard.Cohorts[i].CohortYear < dashboard.Cohorts[j].CohortYear
	})

	return dashboard, nil
}
