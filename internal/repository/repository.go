package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"worktrack/internal/model"
)

// Collection names in the worktrack database
const (
	UsersCollection       = "users"
	MessagesCollection    = "messages"
	PaymentsCollection    = "payments"
	WorkRecordsCollection = "workRecords"
)

func toInsertResult(res *mongo.InsertOneResult) *model.InsertResult {
	if res == nil {
		return nil
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func toUpdateResult(res *mongo.UpdateResult) *model.UpdateResult {
	if res == nil {
		return nil
	}
	return &model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deref(doc *model.Document) model.Document {
	if doc == nil {
		return nil
	}
	return *doc
}
