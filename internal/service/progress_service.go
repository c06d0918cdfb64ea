package service

import (
	"context"
	"sort"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
)

// ProgressService derives regular/irregular classifications from the
// answer corpus. Every call recomputes from the stored rows; there is
// no cached state, so results are idempotent and order-independent.
type ProgressService struct {
	studentRepo       repository.StudentRepo
	cohortRepo        repository.CohortRepo
	participationRepo repository.ParticipationRepo
	answerRepo        repository.AnswerRepo
	classifier        *PatternClassifier
}

// NewProgressService creates a new progress service
func NewProgressService(
	studentRepo repository.StudentRepo,
	cohortRepo repository.CohortRepo,
	participationRepo repository.ParticipationRepo,
	answerRepo repository.AnswerRepo,
	classifier *PatternClassifier,
) *ProgressService {
	return &ProgressService{
		studentRepo:       studentRepo,
		cohortRepo:        cohortRepo,
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		classifier:        classifier,
	}
}

// ClassifyAnswers folds classifier signals over one student's answers.
// A requirement tag reads true if any answer satisfied it (MAX over
// the corpus); a later contradiction does not clear it. Missing
// signals degrade to unsatisfied, never to an error.
func (s *ProgressService) ClassifyAnswers(student *model.Student, cohort *model.Cohort, answers []*model.Answer) model.StudentClassification {
	c := model.StudentClassification{
		StudentID:    student.ID,
		Matricula:    student.Matricula,
		Name:         student.Name,
		Status:       student.Status,
		CurrentTerm:  student.CurrentTerm,
		Requirements: make(map[model.RequirementTag]bool),
	}
	if cohort != nil {
		c.CohortYear = cohort.Year
		c.CohortPeriod = cohort.Period
	}

	numericSum := 0.0
	numericCount := 0

	for _, answer := range answers {
		sig := s.classifier.Classify(answer.QuestionTitle, answer.Text)
		c.Balance += sig.Weight()
		for tag, satisfied := range sig.Hits {
			if satisfied {
				c.Requirements[tag] = true
			} else if _, seen := c.Requirements[tag]; !seen {
				c.Requirements[tag] = false
			}
		}
		if value, ok := NumericValue(answer.Text); ok {
			numericSum += value
			numericCount++
		}
	}

	c.AnswerCount = len(answers)
	if numericCount > 0 {
		c.NumericAverage = numericSum / float64(numericCount)
	}

	for _, tag := range model.CoreRequirements {
		if c.Requirements[tag] {
			c.RequirementsMet++
		}
	}
	c.Regular = c.Balance > 0 && c.RequirementsMet >= 2

	return c
}

// ClassifyStudent recomputes one student's classification from all
// answers belonging to completed participations.
func (s *ProgressService) ClassifyStudent(ctx context.Context, studentID string) (*model.StudentClassification, error) {
	if studentID == "" {
		return nil, model.NewValidationError("studentId", "is required")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, model.NewComputationError("student classification", err)
	}
	if student == nil {
		return nil, model.NewNotFoundError("student", studentID)
	}

	cohort, err := s.cohortRepo.GetByID(ctx, student.CohortID)
	if err != nil {
		return nil, model.NewComputationError("student classification", err)
	}

	answers, err := s.completedAnswersByStudent(ctx, studentID)
	if err != nil {
		return nil, model.NewComputationError("student classification", err)
	}

	c := s.ClassifyAnswers(student, cohort, answers)
	return &c, nil
}

// ClassifyAll classifies every student, optionally restricted to
// cohorts admitted in the given year (0 means all).
func (s *ProgressService) ClassifyAll(ctx context.Context, year int) ([]model.StudentClassification, []*model.Cohort, error) {
	cohorts, err := s.cohorts(ctx, year)
	if err != nil {
		return nil, nil, model.NewComputationError("cohort classification", err)
	}

	cohortByID := make(map[string]*model.Cohort, len(cohorts))
	for _, cohort := range cohorts {
		cohortByID[cohort.ID] = cohort
	}

	students, err := s.studentRepo.List(ctx, model.StudentFilter{})
	if err != nil {
		return nil, nil, model.NewComputationError("cohort classification", err)
	}

	answersByStudent, err := s.completedAnswersAll(ctx)
	if err != nil {
		return nil, nil, model.NewComputationError("cohort classification", err)
	}

	var results []model.StudentClassification
	for _, student := range students {
		cohort := cohortByID[student.CohortID]
		if year != 0 && cohort == nil {
			continue // outside the requested admission year
		}
		results = append(results, s.ClassifyAnswers(student, cohort, answersByStudent[student.ID]))
	}

	// Stable output regardless of store iteration order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Matricula < results[j].Matricula
	})
	return results, cohorts, nil
}

// Distribution counts regular vs irregular students, optionally
// filtered by admission year.
func (s *ProgressService) Distribution(ctx context.Context, year int) (*model.RegularityDistribution, error) {
	classifications, _, err := s.ClassifyAll(ctx, year)
	if err != nil {
		return nil, err
	}
	dist := distributionOf(classifications)
	return &dist, nil
}

func distributionOf(classifications []model.StudentClassification) model.RegularityDistribution {
	var dist model.RegularityDistribution
	for _, c := range classifications {
		if c.Regular {
			dist.Regular++
		} else {
			dist.Irregular++
		}
	}
	dist.Total = len(classifications)
	return dist
}

// CompareCohorts groups classifications per cohort with mean balance
// and mean numeric-answer average.
func CompareCohorts(classifications []model.StudentClassification) []model.CohortComparison {
	type bucket struct {
		comparison model.CohortComparison
		balanceSum int
		numericSum float64
		count      int
	}
	buckets := make(map[[2]int]*bucket)

	for _, c := range classifications {
		key := [2]int{c.CohortYear, c.CohortPeriod}
		b := buckets[key]
		if b == nil {
			b = &bucket{comparison: model.CohortComparison{CohortYear: c.CohortYear, CohortPeriod: c.CohortPeriod}}
			buckets[key] = b
		}
		if c.Regular {
			b.comparison.Regular++
		} else {
			b.comparison.Irregular++
		}
		b.balanceSum += c.Balance
		b.numericSum += c.NumericAverage
		b.count++
	}

	comparisons := make([]model.CohortComparison, 0, len(buckets))
	for _, b := range buckets {
		b.comparison.MeanBalance = float64(b.balanceSum) / float64(b.count)
		b.comparison.MeanNumericAvg = b.numericSum / float64(b.count)
		comparisons = append(comparisons, b.comparison)
	}
	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].CohortYear != comparisons[j].CohortYear {
			return comparisons[i].CohortYear < comparisons[j].CohortYear
		}
		return comparisons[i].CohortPeriod < comparisons[j].CohortPeriod
	})
	return comparisons
}

// GraduationMetricsOf summarizes graduation readiness. Egresados
// requires all four core requirements regardless of term; próximo
// egreso is term 8-9 with at least two requirements met.
func GraduationMetricsOf(classifications []model.StudentClassification) model.GraduationMetrics {
	metrics := model.GraduationMetrics{}
	tags := append(append([]model.RequirementTag{}, model.CoreRequirements...), model.ReqEnglishAccredited)
	satisfied := make(map[model.RequirementTag]int)

	for _, c := range classifications {
		if c.RequirementsMet == len(model.CoreRequirements) {
			metrics.Egresados++
		}
		if c.CurrentTerm >= 8 && c.CurrentTerm <= 9 && c.RequirementsMet >= 2 {
			metrics.ProximoEgreso++
		}
		for _, tag := range tags {
			if c.Requirements[tag] {
				satisfied[tag]++
			}
		}
	}

	total := len(classifications)
	for _, tag := range tags {
		completion := model.RequirementCompletion{
			Tag:       tag,
			Name:      model.RequirementNames[tag],
			Satisfied: satisfied[tag],
			Total:     total,
		}
		if total > 0 {
			completion.Percentage = float64(satisfied[tag]) / float64(total) * 100
		}
		metrics.Requirements = append(metrics.Requirements, completion)
	}
	return metrics
}

// IncompleteRequirements lists every student missing at least one core
// requirement, sorted by missing count desc, then cohort year, then id.
func IncompleteRequirements(classifications []model.StudentClassification) []model.StudentRequirementReport {
	var reports []model.StudentRequirementReport
	for _, c := range classifications {
		var missing []string
		for _, tag := range model.CoreRequirements {
			if !c.Requirements[tag] {
				missing = append(missing, model.RequirementNames[tag])
			}
		}
		if len(missing) == 0 {
			continue
		}
		reports = append(reports, model.StudentRequirementReport{
			StudentID:    c.StudentID,
			Matricula:    c.Matricula,
			Name:         c.Name,
			CohortYear:   c.CohortYear,
			Missing:      missing,
			MissingCount: len(missing),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].MissingCount != reports[j].MissingCount {
			return reports[i].MissingCount > reports[j].MissingCount
		}
		if reports[i].CohortYear != reports[j].CohortYear {
			return reports[i].CohortYear < reports[j].CohortYear
		}
		return reports[i].Matricula < reports[j].Matricula
	})
	return reports
}

func (s *ProgressService) cohorts(ctx context.Context, year int) ([]*model.Cohort, error) {
	if year != 0 {
		return s.cohortRepo.ListByYear(ctx, year)
	}
	return s.cohortRepo.List(ctx)
}

func (s *ProgressService) completedAnswersByStudent(ctx context.Context, studentID string) ([]*model.Answer, error) {
	participations, err := s.participationRepo.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(participations))
	for _, p := range participations {
		ids = append(ids, p.ID)
	}
	return s.answerRepo.GetByParticipationIDs(ctx, ids)
}

func (s *ProgressService) completedAnswersAll(ctx context.Context) (map[string][]*model.Answer, error) {
	participations, err := s.participationRepo.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(participations))
	for _, p := range participations {
		ids = append(ids, p.ID)
	}
	answers, err := s.answerRepo.GetByParticipationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[string][]*model.Answer)
	for _, a := range answers {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], a)
	}
	return byStudent, nil
}
