package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/config"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

func newRiskService(students *fakeStudentRepo, cohorts *fakeCohortRepo, records *fakeAcademicRepo) *RiskService {
	return NewRiskService(students, cohorts, records, config.DefaultEngineConfig())
}

func TestAssessWeightedFactors(t *testing.T) {
	svc := newRiskService(&fakeStudentRepo{}, &fakeCohortRepo{}, &fakeAcademicRepo{})

	student := &model.Student{ID: "s1", Matricula: "210002", Name: "Luis", CurrentTerm: 8}
	records := []*model.AcademicRecord{
		{StudentID: "s1", FinalGrade: 5, Status: model.CourseReprobada},
		{StudentID: "s1", FinalGrade: 6.5, Status: model.CourseAprobada},
		{StudentID: "s1", FinalGrade: 9, Status: model.CourseAprobada},
	}

	a := svc.Assess(student, records)

	// avg 6.83 (+25), 1 failed (+10), 1 borderline (+6), advanced term (+10)
	assert.Equal(t, 51, a.Score)
	assert.Equal(t, model.RiskMedio, a.Level)
	assert.Equal(t, 3, a.GradedCourses)
	assert.Equal(t, 1, a.FailedCount)
	assert.InDelta(t, 6.833, a.Average, 0.001)
	assert.Len(t, a.Factors, 4)
}

func TestAssessBucketBoundaries(t *testing.T) {
	svc := newRiskService(&fakeStudentRepo{}, &fakeCohortRepo{}, &fakeAcademicRepo{})
	student := &model.Student{ID: "s1", CurrentTerm: 1}

	// Average exactly 6 falls in the "bajo" average bucket, and the
	// grade itself is borderline.
	a := svc.Assess(student, []*model.AcademicRecord{
		{FinalGrade: 6, Status: model.CourseAprobada},
	})
	assert.Equal(t, 31, a.Score)
	assert.Equal(t, model.RiskMedio, a.Level)

	// Average 8 triggers no factor at all.
	a = svc.Assess(student, []*model.AcademicRecord{
		{FinalGrade: 8, Status: model.CourseAprobada},
	})
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, model.RiskBajo, a.Level)
	assert.Empty(t, a.Factors)
}

func TestAssessIgnoresUngradedRows(t *testing.T) {
	svc := newRiskService(&fakeStudentRepo{}, &fakeCohortRepo{}, &fakeAcademicRepo{})
	student := &model.Student{ID: "s1", CurrentTerm: 3}

	a := svc.Assess(student, []*model.AcademicRecord{
		{FinalGrade: 0, Status: model.CourseCursando},
		{FinalGrade: 9, Status: model.CourseAprobada},
	})

	assert.Equal(t, 1, a.GradedCourses)
	assert.Equal(t, 9.0, a.Average)
	assert.Equal(t, 0, a.Score)
}

func TestAssessNoRecords(t *testing.T) {
	svc := newRiskService(&fakeStudentRepo{}, &fakeCohortRepo{}, &fakeAcademicRepo{})

	a := svc.Assess(&model.Student{ID: "s1"}, nil)

	assert.Equal(t, model.RiskBajo, a.Level)
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, []string{"Sin registros de calificaciones"}, a.Factors)
}

func TestAssessScoreClamped(t *testing.T) {
	svc := newRiskService(&fakeStudentRepo{}, &fakeCohortRepo{}, &fakeAcademicRepo{})
	student := &model.Student{ID: "s1", CurrentTerm: 9}

	records := []*model.AcademicRecord{
		{FinalGrade: 5, Status: model.CourseReprobada},
		{FinalGrade: 5, Status: model.CourseReprobada},
		{FinalGrade: 5, Status: model.CourseReprobada},
		{FinalGrade: 6, Status: model.CourseAprobada, ExtraGrade: 8},
		{FinalGrade: 6, Status: model.CourseAprobada, ExtraGrade: 8},
		{FinalGrade: 6, Status: model.CourseAprobada},
	}

	a := svc.Assess(student, records)

	assert.Equal(t, 100, a.Score)
	assert.Equal(t, model.RiskAlto, a.Level)
}

func TestAssessBetterGradesNeverRaiseScore(t *testing.T) {
	svc := newRiskService(&fakeStudentRepo{}, &fakeCohortRepo{}, &fakeAcademicRepo{})
	student := &model.Student{ID: "s1", CurrentTerm: 8}

	base := []*model.AcademicRecord{
		{FinalGrade: 5, Status: model.CourseReprobada},
		{FinalGrade: 6.5, Status: model.CourseAprobada},
		{FinalGrade: 9, Status: model.CourseAprobada},
	}
	improved := append(append([]*model.AcademicRecord{}, base...),
		&model.AcademicRecord{FinalGrade: 10, Status: model.CourseAprobada})

	before := svc.Assess(student, base)
	after := svc.Assess(student, improved)

	assert.LessOrEqual(t, after.Score, before.Score)
}

func TestAssessStudentAttachesCohortYear(t *testing.T) {
	students := &fakeStudentRepo{students: []*model.Student{
		{ID: "s1", Matricula: "210001", CohortID: "c1", CurrentTerm: 2},
	}}
	cohorts := &fakeCohortRepo{cohorts: []*model.Cohort{{ID: "c1", Year: 2021, Period: model.PeriodEnero}}}
	records := &fakeAcademicRepo{records: []*model.AcademicRecord{
		{StudentID: "s1", FinalGrade: 9, Status: model.CourseAprobada},
	}}
	svc := newRiskService(students, cohorts, records)

	a, err := svc.AssessStudent(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Equal(t, 2021, a.CohortYear)

	_, err = svc.AssessStudent(context.Background(), "")
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.AssessStudent(context.Background(), "missing")
	var nferr *model.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestRiskDashboard(t *testing.T) {
	students := &fakeStudentRepo{students: []*model.Student{
		{ID: "s1", Matricula: "210001", Name: "Ana", CohortID: "c1", Status: model.StatusInscrito, CurrentTerm: 9},
		{ID: "s2", Matricula: "210002", Name: "Luis", CohortID: "c1", Status: model.StatusInscrito, CurrentTerm: 8},
		{ID: "s3", Matricula: "220001", Name: "María", CohortID: "c2", Status: model.StatusInscrito, CurrentTerm: 4},
	}}
	cohorts := &fakeCohortRepo{cohorts: []*model.Cohort{
		{ID: "c1", Year: 2021, Period: model.PeriodEnero},
		{ID: "c2", Year: 2022, Period: model.PeriodEnero},
	}}
	records := &fakeAcademicRepo{records: []*model.AcademicRecord{
		{StudentID: "s1", FinalGrade: 9, Status: model.CourseAprobada},
		{StudentID: "s2", FinalGrade: 5, Status: model.CourseReprobada},
		{StudentID: "s2", FinalGrade: 6.5, Status: model.CourseAprobada},
		{StudentID: "s2", FinalGrade: 9, Status: model.CourseAprobada},
		{StudentID: "s3", FinalGrade: 8.5, Status: model.CourseAprobada},
	}}
	svc := newRiskService(students, cohorts, records)

	dashboard, err := svc.Dashboard(context.Background(), model.RiskFilters{})
	assert.NoError(t, err)
	assert.Equal(t, 3, dashboard.Statistics.Total)
	assert.Equal(t, 2, dashboard.Statistics.Low)
	assert.Equal(t, 1, dashboard.Statistics.Medium)
	assert.InDelta(t, 17.0, dashboard.Statistics.AverageScore, 0.01)
	// Highest score first, then matrícula.
	assert.Equal(t, "210002", dashboard.Students[0].Matricula)
	assert.Equal(t, "210001", dashboard.Students[1].Matricula)
	assert.Equal(t, "220001", dashboard.Students[2].Matricula)
	assert.Len(t, dashboard.Cohorts, 2)
	assert.Equal(t, 2021, dashboard.Cohorts[0].CohortYear)

	filtered, err := svc.Dashboard(context.Background(), model.RiskFilters{CohortYear: 2021, RiskLevel: model.RiskMedio})
	assert.NoError(t, err)
	assert.Len(t, filtered.Students, 1)
	assert.Equal(t, "210002", filtered.Students[0].Matricula)

	_, err = svc.Dashboard(context.Background(), model.RiskFilters{RiskLevel: "critico"})
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}
