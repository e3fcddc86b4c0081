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

type MongoSongStore struct {
	col *mongo.Collection
}

func NewMongoSongStore(ctx context.Context, m *storage.Mongo) *MongoSongStore {
	col := m.Collection("songs")
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "is_pending", Value: 1}, {Key: "is_visible", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return &MongoSongStore{col: col}
}

// statusFilter mirrors Song.Status: the deleted flag wins, then pending,
// then visibility. Missing flags read as false.
func statusFilter(status models.SongStatus) bson.M {
	notDeleted := bson.M{"$ne": true}
	switch status {
	case models.SongPending:
		return bson.M{"is_deleted": notDeleted, "is_pending": true}
	case models.SongApproved:
		return bson.M{"is_deleted": notDeleted, "is_pending": bson.M{"$ne": true}, "is_visible": true}
	case models.SongPaused:
		return bson.M{"is_deleted": notDeleted, "is_pending": bson.M{"$ne": true}, "is_visible": bson.M{"$ne": true}}
	case models.SongDeleted:
		return bson.M{"is_deleted": true}
	}
	return bson.M{}
}

func (s *MongoSongStore) GetSong(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *MongoSongStore) ListSongs(ctx context.Context, status models.SongStatus) ([]models.Song, error) {
	cur, err := s.col.Find(ctx, statusFilter(status), options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.Song, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoSongStore) SetSongStatus(ctx context.Context, id string, status models.SongStatus) error {
	pending, visible, deleted := status.Flags()
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"is_pending": pending,
		"is_visible": visible,
		"is_deleted": deleted,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSongNotFound
	}
	return nil
}

func (s *MongoSongStore) DeleteSong(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSongNotFound
	}
	return nil
}
