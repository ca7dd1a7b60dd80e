package generic

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseRepository Interface
type BaseRepository[T any] interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error)
	FindOne(ctx context.Context, filter interface{}) (*T, error)
	Insert(ctx context.Context, doc interface{}) (*mongo.InsertOneResult, error)
	SetFields(ctx context.Context, filter interface{}, fields interface{}) (*mongo.UpdateResult, error)
}

// MongoBaseRepository Implementation
type MongoBaseRepository[T any] struct {
	Collection *mongo.Collection
}

var _ BaseRepository[bson.M] = (*MongoBaseRepository[bson.M])(nil)

func NewBaseRepository[T any](collection *mongo.Collection) *MongoBaseRepository[T] {
	return &MongoBaseRepository[T]{Collection: collection}
}

// 1. Find returns every match; an empty result is an empty slice, not nil.
func (r *MongoBaseRepository[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := r.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// 2. FindOne returns nil without error when nothing matches.
func (r *MongoBaseRepository[T]) FindOne(ctx context.Context, filter interface{}) (*T, error) {
	var entity T
	err := r.Collection.FindOne(ctx, filter).Decode(&entity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// 3. Insert stores the document as-is; the store assigns _id when missing.
func (r *MongoBaseRepository[T]) Insert(ctx context.Context, doc interface{}) (*mongo.InsertOneResult, error) {
	return r.Collection.InsertOne(ctx, doc)
}

// 4. SetFields applies a $set of the given fields to the first match.
func (r *MongoBaseRepository[T]) SetFields(ctx context.Context, filter interface{}, fields interface{}) (*mongo.UpdateResult, error) {
	return r.Collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
}
