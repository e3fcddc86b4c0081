package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/storage"
)

type MongoContactStore struct {
	col *mongo.Collection
}

func NewMongoContactStore(ctx context.Context, m *storage.Mongo) *MongoContactStore {
	col := m.Collection("contact_messages")
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return &MongoContactStore{col: col}
}

func (s *MongoContactStore) ListMessages(ctx context.Context, includeResolved bool) ([]models.ContactMessage, error) {
	filter := bson.M{}
	if !includeResolved {
		filter["resolved_at"] = bson.M{"$exists": false}
	}
	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.ContactMessage, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoContactStore) ResolveMessage(ctx context.Context, id, adminID string, at time.Time) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"resolved_at": at,
		"resolved_by": adminID,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (s *MongoContactStore) DeleteMessage(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.col, id)
}

type MongoNotificationStore struct {
	col *mongo.Collection
}

func NewMongoNotificationStore(ctx context.Context, m *storage.Mongo) *MongoNotificationStore {
	col := m.Collection("notifications")
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return &MongoNotificationStore{col: col}
}

func (s *MongoNotificationStore) InsertNotification(ctx context.Context, n models.Notification) error {
	_, err := s.col.InsertOne(ctx, n)
	return err
}
