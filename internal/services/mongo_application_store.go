package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/storage"
)

// MongoApplicationStore keeps pending applications and the rejected
// archive, which is keyed by applicant id.
type MongoApplicationStore struct {
	pendingCol  *mongo.Collection
	rejectedCol *mongo.Collection
}

func NewMongoApplicationStore(ctx context.Context, m *storage.Mongo) *MongoApplicationStore {
	s := &MongoApplicationStore{
		pendingCol:  m.Collection("artist_applications"),
		rejectedCol: m.Collection("rejected_artist_applications"),
	}
	_, _ = s.pendingCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return s
}

func (s *MongoApplicationStore) ListPending(ctx context.Context) ([]models.ArtistApplication, error) {
	return listApplications(ctx, s.pendingCol, "created_at")
}

func (s *MongoApplicationStore) ListRejected(ctx context.Context) ([]models.ArtistApplication, error) {
	return listApplications(ctx, s.rejectedCol, "rejected_at")
}

func listApplications(ctx context.Context, col *mongo.Collection, sortKey string) ([]models.ArtistApplication, error) {
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.ArtistApplication, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoApplicationStore) CountPending(ctx context.Context) (int64, error) {
	return s.pendingCol.CountDocuments(ctx, bson.M{})
}

func (s *MongoApplicationStore) GetPending(ctx context.Context, id string) (*models.ArtistApplication, error) {
	return getApplication(ctx, s.pendingCol, id)
}

func (s *MongoApplicationStore) GetRejected(ctx context.Context, userID string) (*models.ArtistApplication, error) {
	return getApplication(ctx, s.rejectedCol, userID)
}

func getApplication(ctx context.Context, col *mongo.Collection, id string) (*models.ArtistApplication, error) {
	var app models.ArtistApplication
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *MongoApplicationStore) SavePending(ctx context.Context, a models.ArtistApplication) error {
	_, err := s.pendingCol.ReplaceOne(ctx, bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoApplicationStore) SaveRejected(ctx context.Context, a models.ArtistApplication) error {
	_, err := s.rejectedCol.ReplaceOne(ctx, bson.M{"_id": a.UserID}, a, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoApplicationStore) DeletePending(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, s.pendingCol, id)
}

func (s *MongoApplicationStore) DeleteRejected(ctx context.Context, userID string) (bool, error) {
	return deleteByID(ctx, s.rejectedCol, userID)
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) (bool, error) {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
