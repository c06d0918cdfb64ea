package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeStudentRepo struct {
	students []*model.Student
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) GetByMatricula(_ context.Context, matricula string) (*model.Student, error) {
	for _, s := range f.students {
		if s.Matricula == matricula {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) List(_ context.Context, filter model.StudentFilter) ([]*model.Student, error) {
	var out []*model.Student
	for _, s := range f.students {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Career != "" && s.Career != filter.Career {
			continue
		}
		if filter.CohortID != "" && s.CohortID != filter.CohortID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentRepo) Create(_ context.Context, student *model.Student) (string, error) {
	id := "student-" + strconv.Itoa(len(f.students)+1)
	student.ID = id
	f.students = append(f.students, student)
	return id, nil
}

type fakeCohortRepo struct {
	cohorts []*model.Cohort
}

func (f *fakeCohortRepo) GetByID(_ context.Context, id string) (*model.Cohort, error) {
	for _, c := range f.cohorts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCohortRepo) GetByYearPeriod(_ context.Context, year, period int) (*model.Cohort, error) {
	for _, c := range f.cohorts {
		if c.Year == year && c.Period == period {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCohortRepo) List(_ context.Context) ([]*model.Cohort, error) {
	return f.cohorts, nil
}

func (f *fakeCohortRepo) ListByYear(_ context.Context, year int) ([]*model.Cohort, error) {
	var out []*model.Cohort
	for _, c := range f.cohorts {
		if c.Year == year {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCohortRepo) Create(_ context.Context, cohort *model.Cohort) (string, error) {
	cohort.ComputeDates()
	cohort.ID = "cohort-" + strconv.Itoa(len(f.cohorts)+1)
	f.cohorts = append(f.cohorts, cohort)
	return cohort.ID, nil
}

type fakeSurveyRepo struct {
	surveys []*model.Survey
}

func (f *fakeSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	for _, s := range f.surveys {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSurveyRepo) List(_ context.Context) ([]*model.Survey, error) {
	return f.surveys, nil
}

func (f *fakeSurveyRepo) Create(_ context.Context, survey *model.Survey) (string, error) {
	f.surveys = append(f.surveys, survey)
	return survey.ID, nil
}

type fakeParticipationRepo struct {
	participations []*model.Participation
	deleted        []string
}

func (f *fakeParticipationRepo) Create(_ context.Context, p *model.Participation) (string, error) {
	p.ID = "participation-" + strconv.Itoa(len(f.participations)+1)
	if p.Status == "" {
		p.Status = model.ParticipationPending
	}
	f.participations = append(f.participations, p)
	return p.ID, nil
}

func (f *fakeParticipationRepo) GetByID(_ context.Context, id string) (*model.Participation, error) {
	for _, p := range f.participations {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeParticipationRepo) GetBySurvey(_ context.Context, surveyID string) ([]*model.Participation, error) {
	var out []*model.Participation
	for _, p := range f.participations {
		if p.SurveyID == surveyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) ListCompletedByStudent(_ context.Context, studentID string) ([]*model.Participation, error) {
	var out []*model.Participation
	for _, p := range f.participations {
		if p.StudentID == studentID && p.Status == model.ParticipationCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) ListCompleted(_ context.Context) ([]*model.Participation, error) {
	var out []*model.Participation
	for _, p := range f.participations {
		if p.Status == model.ParticipationCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipationRepo) MarkCompleted(_ context.Context, id string) error {
	for _, p := range f.participations {
		if p.ID == id {
			p.Status = model.ParticipationCompleted
			return nil
		}
	}
	return errors.New("participation not found")
}

func (f *fakeParticipationRepo) Delete(_ context.Context, id string) error {
	for i, p := range f.participations {
		if p.ID == id {
			f.participations = append(f.participations[:i], f.participations[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("participation not found")
}

type fakeAnswerRepo struct {
	answers   []*model.Answer
	failBatch bool
	// persistBefore mimics an ordered InsertMany failing partway:
	// that many answers persist before failBatch's error fires.
	persistBefore int
}

func (f *fakeAnswerRepo) CreateBatch(_ context.Context, answers []*model.Answer) error {
	if f.failBatch {
		persist := f.persistBefore
		if persist > len(answers) {
			persist = len(answers)
		}
		f.answers = append(f.answers, answers[:persist]...)
		return errors.New("insert failed")
	}
	f.answers = append(f.answers, answers...)
	return nil
}

func (f *fakeAnswerRepo) GetBySurvey(_ context.Context, surveyID string) ([]*model.Answer, error) {
	var out []*model.Answer
	for _, a := range f.answers {
		if a.SurveyID == surveyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnswerRepo) GetByParticipationIDs(_ context.Context, participationIDs []string) ([]*model.Answer, error) {
	wanted := make(map[string]bool, len(participationIDs))
	for _, id := range participationIDs {
		wanted[id] = true
	}
	var out []*model.Answer
	for _, a := range f.answers {
		if wanted[a.ParticipationID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAnswerRepo) DeleteByParticipation(_ context.Context, participationID string) error {
	kept := f.answers[:0]
	for _, a := range f.answers {
		if a.ParticipationID != participationID {
			kept = append(kept, a)
		}
	}
	f.answers = kept
	return nil
}

type fakeAcademicRepo struct {
	records []*model.AcademicRecord
}

func (f *fakeAcademicRepo) GetByStudent(_ context.Context, studentID string) ([]*model.AcademicRecord, error) {
	var out []*model.AcademicRecord
	for _, r := range f.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAcademicRepo) GetAll(_ context.Context) ([]*model.AcademicRecord, error) {
	return f.records, nil
}

func (f *fakeAcademicRepo) CreateBatch(_ context.Context, records []*model.AcademicRecord) error {
	f.records = append(f.records, records...)
	return nil
}

type fakeTokenCache struct {
	tokens map[string]*model.AccessToken
}

func newFakeTokenCache() *fakeTokenCache {
	return &fakeTokenCache{tokens: make(map[string]*model.AccessToken)}
}

func (f *fakeTokenCache) key(surveyID, studentID string) string {
	return surveyID + ":" + studentID
}

func (f *fakeTokenCache) Save(_ context.Context, token *model.AccessToken) error {
	f.tokens[f.key(token.SurveyID, token.StudentID)] = token
	return nil
}

func (f *fakeTokenCache) Get(_ context.Context, surveyID, studentID string) (*model.AccessToken, error) {
	return f.tokens[f.key(surveyID, studentID)], nil
}

func (f *fakeTokenCache) MarkUsed(_ context.Context, token *model.AccessToken) error {
	token.Used = true
	f.tokens[f.key(token.SurveyID, token.StudentID)] = token
	return nil
}
