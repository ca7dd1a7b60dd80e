package repository

import (
	"context"

	"worktrack/internal/model"
	"worktrack/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IWorkRecordRepository defines work record persistence
type IWorkRecordRepository interface {
	FindAll(ctx context.Context) ([]model.Document, error)
	FindByEmail(ctx context.Context, email string) ([]model.Document, error)
	Create(ctx context.Context, record model.Document) (*model.InsertResult, error)
}

type WorkRecordRepository struct {
	base *generic.MongoBaseRepository[model.Document]
}

func NewWorkRecordRepository(db *mongo.Database) IWorkRecordRepository {
	return &WorkRecordRepository{base: generic.NewBaseRepository[model.Document](db.Collection(WorkRecordsCollection))}
}

func (r *WorkRecordRepository) FindAll(ctx context.Context) ([]model.Document, error) {
	return r.base.Find(ctx, bson.M{})
}

func (r *WorkRecordRepository) FindByEmail(ctx context.Context, email string) ([]model.Document, error) {
	return r.base.Find(ctx, bson.M{model.FieldEmail: email})
}

func (r *WorkRecordRepository) Create(ctx context.Context, record model.Document) (*model.InsertResult, error) {
	res, err := r.base.Insert(ctx, record)
	if err != nil {
		return nil, err
	}
	return toInsertResult(res), nil
}
