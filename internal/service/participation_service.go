package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/cache"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/repository"
)

// AnswerInput is one answer in a submission request
type AnswerInput struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

// SubmitRequest is a full survey submission
type SubmitRequest struct {
	Token     string        `json:"token"`
	SurveyID  string        `json:"surveyId"`
	StudentID string        `json:"studentId"`
	Answers   []AnswerInput `json:"answers"`
}

// ParticipationService owns the write path the engine later reads:
// token issuance and the atomic participation+answers ingestion.
type ParticipationService struct {
	surveySvc         *SurveyService
	studentRepo       repository.StudentRepo
	participationRepo repository.ParticipationRepo
	answerRepo        repository.AnswerRepo
	tokens            cache.TokenCache
}

// NewParticipationService creates a new participation service
func NewParticipationService(
	surveySvc *SurveyService,
	studentRepo repository.StudentRepo,
	participationRepo repository.ParticipationRepo,
	answerRepo repository.AnswerRepo,
	tokens cache.TokenCache,
) *ParticipationService {
	return &ParticipationService{
		surveySvc:         surveySvc,
		studentRepo:       studentRepo,
		participationRepo: participationRepo,
		answerRepo:        answerRepo,
		tokens:            tokens,
	}
}

// IssueToken grants a student access to an open survey. If an unused
// token already exists for the pair it is returned unchanged, keeping
// at most one active token per (student, survey).
func (s *ParticipationService) IssueToken(ctx context.Context, surveyID, studentID string) (*model.AccessToken, error) {
	survey, err := s.surveySvc.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !survey.IsOpen(time.Now()) {
		return nil, model.NewValidationError("surveyId", "survey window is closed")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, model.NewComputationError("token issuance", err)
	}
	if student == nil {
		return nil, model.NewNotFoundError("student", studentID)
	}

	existing, err := s.tokens.Get(ctx, surveyID, studentID)
	if err != nil {
		return nil, model.NewComputationError("token issuance", err)
	}
	if existing != nil && !existing.Used {
		return existing, nil
	}
	if existing != nil && existing.Used {
		return nil, model.NewValidationError("token", "survey already answered")
	}

	expiresAt := survey.EndAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(7 * 24 * time.Hour)
	}
	token := &model.AccessToken{
		Token:     uuid.NewString(),
		SurveyID:  surveyID,
		StudentID: studentID,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return nil, model.NewComputationError("token issuance", err)
	}
	return token, nil
}

// Submit runs the ingestion sequence: validate the token, create the
// participation, batch-create the answers, mark the participation
// completed, then mark the token used. If answer writing fails the
// participation and any answers already written are rolled back so the
// corpus never holds a half submission.
func (s *ParticipationService) Submit(ctx context.Context, req SubmitRequest) (*model.Participation, error) {
	if req.Token == "" {
		return nil, model.NewValidationError("token", "is required")
	}
	if len(req.Answers) == 0 {
		return nil, model.NewValidationError("answers", "must not be empty")
	}

	survey, err := s.surveySvc.GetByID(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Get(ctx, req.SurveyID, req.StudentID)
	if err != nil {
		return nil, model.NewComputationError("submission", err)
	}
	if token == nil || token.Token != req.Token {
		return nil, model.NewValidationError("token", "is invalid or expired")
	}
	if token.Used {
		return nil, model.NewValidationError("token", "was already used")
	}

	answers := make([]*model.Answer, 0, len(req.Answers))
	for _, input := range req.Answers {
		question := survey.QuestionByID(input.QuestionID)
		if question == nil {
			return nil, model.NewValidationError("questionId", "does not belong to the survey")
		}
		answers = append(answers, &model.Answer{
			StudentID:     req.StudentID,
			SurveyID:      survey.ID,
			SurveyTitle:   survey.Title,
			SurveyType:    survey.Type,
			QuestionID:    question.ID,
			QuestionTitle: question.Title,
			Text:          input.Text,
		})
	}

	participation := &model.Participation{
		SurveyID:  req.SurveyID,
		StudentID: req.StudentID,
		Status:    model.ParticipationPending,
	}
	if _, err := s.participationRepo.Create(ctx, participation); err != nil {
		return nil, model.NewComputationError("submission", err)
	}

	for _, a := range answers {
		a.ParticipationID = participation.ID
	}
	if err := s.answerRepo.CreateBatch(ctx, answers); err != nil {
		// InsertMany is ordered; answers before the failing one are
		// already durable, so they must go too or the survey metrics
		// would count a half submission.
		if rollbackErr := s.answerRepo.DeleteByParticipation(ctx, participation.ID); rollbackErr != nil {
			log.Printf("rollback of answers for participation %s failed: %v", participation.ID, rollbackErr)
		}
		if rollbackErr := s.participationRepo.Delete(ctx, participation.ID); rollbackErr != nil {
			log.Printf("rollback of participation %s failed: %v", participation.ID, rollbackErr)
		}
		return nil, model.NewComputationError("submission", err)
	}

	if err := s.participationRepo.MarkCompleted(ctx, participation.ID); err != nil {
		return nil, model.NewComputationError("submission", err)
	}
	participation.Status = model.ParticipationCompleted

	if err := s.tokens.MarkUsed(ctx, token); err != nil {
		// The submission itself is durable; a stale token is the
		// lesser failure, so log and return success.
		log.Printf("marking token used for %s/%s failed: %v", req.SurveyID, req.StudentID, err)
	}

	return participation, nil
}
