package repository

import (
	"context"

	"worktrack/internal/model"
	"worktrack/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IPaymentRepository defines payment persistence
type IPaymentRepository interface {
	FindByEmail(ctx context.Context, email string) ([]model.Document, error)
	FindByEmployeeMonth(ctx context.Context, employeeID, month string) (model.Document, error)
	Create(ctx context.Context, payment model.Document) (*model.InsertResult, error)
}

type PaymentRepository struct {
	base *generic.MongoBaseRepository[model.Document]
}

func NewPaymentRepository(db *mongo.Database) IPaymentRepository {
	return &PaymentRepository{base: generic.NewBaseRepository[model.Document](db.Collection(PaymentsCollection))}
}

// FindByEmail filters on the payment's own email field, not employeeId.
func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]model.Document, error) {
	return r.base.Find(ctx, bson.M{model.FieldEmail: email})
}

func (r *PaymentRepository) FindByEmployeeMonth(ctx context.Context, employeeID, month string) (model.Document, error) {
	doc, err := r.base.FindOne(ctx, bson.M{model.FieldEmployeeID: employeeID, model.FieldMonth: month})
	return deref(doc), err
}

func (r *PaymentRepository) Create(ctx context.Context, payment model.Document) (*model.InsertResult, error) {
	res, err := r.base.Insert(ctx, payment)
	if err != nil {
		return nil, err
	}
	return toInsertResult(res), nil
}
