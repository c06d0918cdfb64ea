package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// StudentRepo handles MongoDB operations for students
type StudentRepo interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByMatricula(ctx context.Context, matricula string) (*model.Student, error)
	List(ctx context.Context, filter model.StudentFilter) ([]*model.Student, error)
	Create(ctx context.Context, student *model.Student) (string, error)
}

type studentRepo struct {
	collection *mongo.Collection
}

// NewStudentRepo creates a new student repository
func NewStudentRepo(db *mongo.Database) StudentRepo {
	return &studentRepo{
		collection: db.Collection("students"),
	}
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var student model.Student
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	student.ID = id
	return &student, nil
}

func (r *studentRepo) GetByMatricula(ctx context.Context, matricula string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"matricula": matricula}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context, filter model.StudentFilter) ([]*model.Student, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Career != "" {
		query["career"] = filter.Career
	}
	if filter.CohortID != "" {
		query["cohortId"] = filter.CohortID
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var students []*model.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) (string, error) {
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	return oid.Hex(), nil
}
