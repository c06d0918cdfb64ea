package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// CohortRepo handles MongoDB operations for cohorts
type CohortRepo interface {
	GetByID(ctx context.Context, id string) (*model.Cohort, error)
	GetByYearPeriod(ctx context.Context, year, period int) (*model.Cohort, error)
	List(ctx context.Context) ([]*model.Cohort, error)
	ListByYear(ctx context.Context, year int) ([]*model.Cohort, error)
	Create(ctx context.Context, cohort *model.Cohort) (string, error)
}

type cohortRepo struct {
	collection *mongo.Collection
}

// NewCohortRepo creates a new cohort repository
func NewCohortRepo(db *mongo.Database) CohortRepo {
	return &cohortRepo{
		collection: db.Collection("cohorts"),
	}
}

func (r *cohortRepo) GetByID(ctx context.Context, id string) (*model.Cohort, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var cohort model.Cohort
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&cohort)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cohort.ID = id
	return &cohort, nil
}

func (r *cohortRepo) GetByYearPeriod(ctx context.Context, year, period int) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.collection.FindOne(ctx, bson.M{"year": year, "period": period}).Decode(&cohort)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *cohortRepo) List(ctx context.Context) ([]*model.Cohort, error) {
	return r.find(ctx, bson.M{})
}

func (r *cohortRepo) ListByYear(ctx context.Context, year int) ([]*model.Cohort, error) {
	return r.find(ctx, bson.M{"year": year})
}

func (r *cohortRepo) find(ctx context.Context, query bson.M) ([]*model.Cohort, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cohorts []*model.Cohort
	if err := cursor.All(ctx, &cohorts); err != nil {
		return nil, err
	}
	return cohorts, nil
}

func (r *cohortRepo) Create(ctx context.Context, cohort *model.Cohort) (string, error) {
	cohort.ComputeDates()
	cohort.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, cohort)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}
