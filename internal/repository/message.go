package repository

import (
	"context"

	"worktrack/internal/model"
	"worktrack/pkg/generic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IMessageRepository defines read access to contact messages
type IMessageRepository interface {
	FindAll(ctx context.Context) ([]model.Document, error)
}

type MessageRepository struct {
	base *generic.MongoBaseRepository[model.Document]
}

func NewMessageRepository(db *mongo.Database) IMessageRepository {
	return &MessageRepository{base: generic.NewBaseRepository[model.Document](db.Collection(MessagesCollection))}
}

func (r *MessageRepository) FindAll(ctx context.Context) ([]model.Document, error) {
	return r.base.Find(ctx, bson.M{})
}
