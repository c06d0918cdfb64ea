package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// AcademicRecordRepo handles MongoDB operations for academic records.
// The history is append-only; rows are never updated.
type AcademicRecordRepo interface {
	GetByStudent(ctx context.Context, studentID string) ([]*model.AcademicRecord, error)
	GetAll(ctx context.Context) ([]*model.AcademicRecord, error)
	CreateBatch(ctx context.Context, records []*model.AcademicRecord) error
}

type academicRecordRepo struct {
	collection *mongo.Collection
}

// NewAcademicRecordRepo creates a new academic record repository
func NewAcademicRecordRepo(db *mongo.Database) AcademicRecordRepo {
	return &academicRecordRepo{
		collection: db.Collection("academic_records"),
	}
}

func (r *academicRecordRepo) GetByStudent(ctx context.Context, studentID string) ([]*model.AcademicRecord, error) {
	return r.find(ctx, bson.M{"studentId": studentID})
}

func (r *academicRecordRepo) GetAll(ctx context.Context) ([]*model.AcademicRecord, error) {
	return r.find(ctx, bson.M{})
}

func (r *academicRecordRepo) find(ctx context.Context, query bson.M) ([]*model.AcademicRecord, error) {
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.AcademicRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *academicRecordRepo) CreateBatch(ctx context.Context, records []*model.AcademicRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now()
		}
		docs = append(docs, rec)
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
