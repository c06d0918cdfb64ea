package model

import "time"

// SurveyType tags what a survey is about. Inferred from the title
// keywords when not set explicitly at creation.
type SurveyType string

const (
	SurveyTypeDocumento   SurveyType = "documento"
	SurveyTypeSeguimiento SurveyType = "seguimiento"
	SurveyTypeFinal       SurveyType = "final"
	SurveyTypeEmpresa     SurveyType = "empresa"
	SurveyTypeGeneral     SurveyType = "general"
)

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeCheckbox QuestionType = "checkbox"
	QuestionTypeSelect   QuestionType = "select"
)

// Survey owns its questions. The lifecycle window bounds when access
// tokens can still be issued for it.
type Survey struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Title     string     `json:"title" bson:"title"`
	Type      SurveyType `json:"type,omitempty" bson:"type,omitempty"`
	StartAt   time.Time  `json:"startAt" bson:"startAt"`
	EndAt     time.Time  `json:"endAt" bson:"endAt"`
	Questions []Question `json:"questions" bson:"questions"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// Question belongs to exactly one survey. The title doubles as the
// topic signal for answer classification.
type Question struct {
	ID      string       `json:"id" bson:"id"`
	Title   string       `json:"title" bson:"title"`
	Type    QuestionType `json:"type" bson:"type"`
	Options []string     `json:"options,omitempty" bson:"options,omitempty"`
}

// QuestionByID returns the owned question with the given id
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// IsOpen reports whether the survey window is active at t
func (s *Survey) IsOpen(t time.Time) bool {
	if !s.StartAt.IsZero() && t.Before(s.StartAt) {
		return false
	}
	if !s.EndAt.IsZero() && t.After(s.EndAt) {
		return false
	}
	return true
}
