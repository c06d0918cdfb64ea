package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// ParticipationRepo handles MongoDB operations for participations
type ParticipationRepo interface {
	Create(ctx context.Context, p *model.Participation) (string, error)
	GetByID(ctx context.Context, id string) (*model.Participation, error)
	GetBySurvey(ctx context.Context, surveyID string) ([]*model.Participation, error)
	ListCompletedByStudent(ctx context.Context, studentID string) ([]*model.Participation, error)
	ListCompleted(ctx context.Context) ([]*model.Participation, error)
	MarkCompleted(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type participationRepo struct {
	collection *mongo.Collection
}

// NewParticipationRepo creates a new participation repository
func NewParticipationRepo(db *mongo.Database) ParticipationRepo {
	return &participationRepo{
		collection: db.Collection("participations"),
	}
}

func (r *participationRepo) Create(ctx context.Context, p *model.Participation) (string, error) {
	p.CreatedAt = time.Now()
	if p.Status == "" {
		p.Status = model.ParticipationPending
	}

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	p.ID = oid.Hex()
	return p.ID, nil
}

func (r *participationRepo) GetByID(ctx context.Context, id string) (*model.Participation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var p model.Participation
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (r *participationRepo) GetBySurvey(ctx context.Context, surveyID string) ([]*model.Participation, error) {
	return r.find(ctx, bson.M{"surveyId": surveyID})
}

func (r *participationRepo) ListCompletedByStudent(ctx context.Context, studentID string) ([]*model.Participation, error) {
	return r.find(ctx, bson.M{"studentId": studentID, "status": model.ParticipationCompleted})
}

func (r *participationRepo) ListCompleted(ctx context.Context) ([]*model.Participation, error) {
	return r.find(ctx, bson.M{"status": model.ParticipationCompleted})
}

func (r *participationRepo) find(ctx context.Context, query bson.M) ([]*model.Participation, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participations []*model.Participation
	if err := cursor.All(ctx, &participations); err != nil {
		return nil, err
	}
	return participations, nil
}

func (r *participationRepo) MarkCompleted(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":      model.ParticipationCompleted,
		"completedAt": now,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *participationRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
