package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// AnswerRepo handles MongoDB operations for answers
type AnswerRepo interface {
	CreateBatch(ctx context.Context, answers []*model.Answer) error
	GetBySurvey(ctx context.Context, surveyID string) ([]*model.Answer, error)
	GetByParticipationIDs(ctx context.Context, participationIDs []string) ([]*model.Answer, error)
	DeleteByParticipation(ctx context.Context, participationID string) error
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

func (r *answerRepo) CreateBatch(ctx context.Context, answers []*model.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(answers))
	for _, a := range answers {
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now()
		}
		docs = append(docs, a)
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}

	for i, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(answers) {
			answers[i].ID = oid.Hex()
		}
	}
	return nil
}

func (r *answerRepo) GetBySurvey(ctx context.Context, surveyID string) ([]*model.Answer, error) {
	return r.find(ctx, bson.M{"surveyId": surveyID})
}

func (r *answerRepo) GetByParticipationIDs(ctx context.Context, participationIDs []string) ([]*model.Answer, error) {
	if len(participationIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"participationId": bson.M{"$in": participationIDs}})
}

func (r *answerRepo) find(ctx context.Context, query bson.M) ([]*model.Answer, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) DeleteByParticipation(ctx context.Context, participationID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"participationId": participationID})
	return err
}
