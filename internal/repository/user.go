package repository

import (
	"context"
	"errors"

	"worktrack/internal/model"
	"worktrack/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IUserRepository defines user persistence. Single-document lookups
// return a nil document and no error when nothing matches.
type IUserRepository interface {
	FindAll(ctx context.Context) ([]model.Document, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Document, error)
	FindByEmail(ctx context.Context, email string) (model.Document, error)
	FindByUID(ctx context.Context, uid string) (model.Document, error)
	Create(ctx context.Context, user model.Document) (*model.InsertResult, error)
	UpdateByEmail(ctx context.Context, email string, fields model.Document) (*model.UpdateResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields model.Document) (*model.UpdateResult, error)
	ToggleVerified(ctx context.Context, id primitive.ObjectID) (model.Document, error)
}

// UserRepository implements user persistence
type UserRepository struct {
	base *generic.MongoBaseRepository[model.Document]
}

func NewUserRepository(db *mongo.Database) IUserRepository {
	return &UserRepository{base: generic.NewBaseRepository[model.Document](db.Collection(UsersCollection))}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.Document, error) {
	return r.base.Find(ctx, bson.M{})
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (model.Document, error) {
	doc, err := r.base.FindOne(ctx, bson.M{model.FieldID: id})
	return deref(doc), err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.Document, error) {
	doc, err := r.base.FindOne(ctx, bson.M{model.FieldEmail: email})
	return deref(doc), err
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (model.Document, error) {
	doc, err := r.base.FindOne(ctx, bson.M{model.FieldUID: uid})
	return deref(doc), err
}

func (r *UserRepository) Create(ctx context.Context, user model.Document) (*model.InsertResult, error) {
	res, err := r.base.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	return toInsertResult(res), nil
}

func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, fields model.Document) (*model.UpdateResult, error) {
	res, err := r.base.SetFields(ctx, bson.M{model.FieldEmail: email}, fields)
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields model.Document) (*model.UpdateResult, error) {
	res, err := r.base.SetFields(ctx, bson.M{model.FieldID: id}, fields)
	if err != nil {
		return nil, err
	}
	return toUpdateResult(res), nil
}

// ToggleVerified flips isVerified server-side in a single update and
// returns the updated document. A missing flag counts as false.
func (r *UserRepository) ToggleVerified(ctx context.Context, id primitive.ObjectID) (model.Document, error) {
	flip := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: model.FieldIsVerified, Value: bson.D{{Key: "$not", Value: bson.A{"$" + model.FieldIsVerified}}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user model.Document
	err := r.base.Collection.FindOneAndUpdate(ctx, bson.M{model.FieldID: id}, flip, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
