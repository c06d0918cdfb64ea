package model

import "time"

// ParticipationStatus tracks a single attempt at a survey
type ParticipationStatus string

const (
	ParticipationPending    ParticipationStatus = "pending"
	ParticipationCompleted  ParticipationStatus = "completed"
	ParticipationIncomplete ParticipationStatus = "incomplete"
)

// Participation is one student's attempt at one survey. Answers are
// batch-created under it and immutable afterwards.
type Participation struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	SurveyID    string              `json:"surveyId" bson:"surveyId"`
	StudentID   string              `json:"studentId" bson:"studentId"`
	Status      ParticipationStatus `json:"status" bson:"status"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	CompletedAt *time.Time          `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Answer is a single free-text response. Question title and survey
// tags are denormalized at write time so the classification pipeline
// reads plain rows without joins.
type Answer struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	ParticipationID string     `json:"participationId" bson:"participationId"`
	StudentID       string     `json:"studentId" bson:"studentId"`
	SurveyID        string     `json:"surveyId" bson:"surveyId"`
	SurveyTitle     string     `json:"surveyTitle" bson:"surveyTitle"`
	SurveyType      SurveyType `json:"surveyType" bson:"surveyType"`
	QuestionID      string     `json:"questionId" bson:"questionId"`
	QuestionTitle   string     `json:"questionTitle" bson:"questionTitle"`
	Text            string     `json:"text" bson:"text"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
}

// AccessToken grants one student one attempt at one survey. At most
// one unexpired, unused token exists per (student, survey) pair.
type AccessToken struct {
	Token     string    `json:"token" bson:"token"`
	SurveyID  string    `json:"surveyId" bson:"surveyId"`
	StudentID string    `json:"studentId" bson:"studentId"`
	Used      bool      `json:"used" bson:"used"`
	IssuedAt  time.Time `json:"issuedAt" bson:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}
