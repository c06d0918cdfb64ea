package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

func newDashboardFixture() *DashboardService {
	students := &fakeStudentRepo{students: []*model.Student{
		{ID: "s1", Matricula: "210001", Name: "Ana", CohortID: "c1", Status: model.StatusInscrito, CurrentTerm: 9},
		{ID: "s2", Matricula: "210002", Name: "Luis", CohortID: "c1", Status: model.StatusInscrito, CurrentTerm: 8},
		{ID: "s3", Matricula: "220001", Name: "María", CohortID: "c2", Status: model.StatusBajaTemporal, CurrentTerm: 4},
	}}
	cohorts := &fakeCohortRepo{cohorts: []*model.Cohort{
		{ID: "c1", Year: 2021, Period: model.PeriodEnero},
		{ID: "c2", Year: 2022, Period: model.PeriodEnero},
	}}
	participations := &fakeParticipationRepo{participations: []*model.Participation{
		{ID: "p1", SurveyID: "sv1", StudentID: "s1", Status: model.ParticipationCompleted},
	}}
	answers := &fakeAnswerRepo{answers: []*model.Answer{
		{ParticipationID: "p1", StudentID: "s1", QuestionTitle: "¿Tus pagos de colegiatura están al día?", Text: "al corriente"},
		{ParticipationID: "p1", StudentID: "s1", QuestionTitle: "Estado de tu e.firma", Text: "vigente"},
	}}

	progress := NewProgressService(students, cohorts, participations, answers, NewPatternClassifier())
	return NewDashboardService(progress)
}

func TestCohortCompleteData(t *testing.T) {
	svc := newDashboardFixture()

	data, err := svc.CohortCompleteData(context.Background(), 0)
	assert.NoError(t, err)

	assert.Len(t, data.Students, 3)
	assert.Equal(t, 2, data.StatusDistribution[model.StatusInscrito])
	assert.Equal(t, 1, data.StatusDistribution[model.StatusBajaTemporal])

	// Only s1 answered; two satisfied requirements with positive balance.
	assert.Equal(t, 1, data.Distribution.Regular)
	assert.Equal(t, 2, data.Distribution.Irregular)

	// Every student misses at least two core requirements.
	assert.Len(t, data.GraduationRequirements, 3)

	assert.Len(t, data.Timeline, 2)
	assert.Equal(t, 2021, data.Timeline[0].Year)
	assert.Equal(t, 1, data.Timeline[0].Regular)
	assert.Equal(t, 2022, data.Timeline[1].Year)

	assert.Len(t, data.CohortComparison, 2)
	assert.Len(t, data.Cohorts, 2)
	assert.Len(t, data.GraduationMetrics.Requirements, 5)
}

func TestCohortCompleteDataYearFilter(t *testing.T) {
	svc := newDashboardFixture()

	data, err := svc.CohortCompleteData(context.Background(), 2021)
	assert.NoError(t, err)
	assert.Len(t, data.Students, 2)
	assert.Len(t, data.Cohorts, 1)

	_, err = svc.CohortCompleteData(context.Background(), 99)
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCohortCompleteDataIdempotent(t *testing.T) {
	svc := newDashboardFixture()

	first, err := svc.CohortCompleteData(context.Background(), 0)
	assert.NoError(t, err)
	second, err := svc.CohortCompleteData(context.Background(), 0)
	assert.NoError(t, err)

	assert.Equal(t, first.Students, second.Students)
	assert.Equal(t, first.Distribution, second.Distribution)
	assert.Equal(t, first.Timeline, second.Timeline)
}
