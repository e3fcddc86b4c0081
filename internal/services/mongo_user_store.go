package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/storage"
)

// MongoUserStore keeps user accounts and their fan relations.
type MongoUserStore struct {
	usersCol *mongo.Collection
	fansCol  *mongo.Collection
}

func NewMongoUserStore(ctx context.Context, m *storage.Mongo) *MongoUserStore {
	s := &MongoUserStore{
		usersCol: m.Collection("users"),
		fansCol:  m.Collection("fans"),
	}

	// Best-effort indexes.
	_, _ = s.usersCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "nickname", Value: 1}}},
		{Keys: bson.D{{Key: "suspended_until", Value: 1}}},
	})
	_, _ = s.fansCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "artist_id", Value: 1}},
	})
	return s
}

func (s *MongoUserStore) GetUser(ctx context.Context, id string) (*models.UserAccount, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUserStore) FindByNickname(ctx context.Context, nickname string) (*models.UserAccount, error) {
	return s.findOne(ctx, bson.M{"nickname": nickname})
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.UserAccount, error) {
	var u models.UserAccount
	err := s.usersCol.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUserStore) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoUserStore) ListSuspended(ctx context.Context) ([]models.UserAccount, error) {
	return s.find(ctx, bson.M{"$or": bson.A{
		bson.M{"suspended_until": bson.M{"$ne": nil}},
		bson.M{"is_permanently_banned": true},
	}})
}

func (s *MongoUserStore) find(ctx context.Context, filter bson.M) ([]models.UserAccount, error) {
	cur, err := s.usersCol.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "nickname", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.UserAccount, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoUserStore) CountFans(ctx context.Context, artistID string) (int64, error) {
	return s.fansCol.CountDocuments(ctx, bson.M{"artist_id": artistID})
}

func (s *MongoUserStore) ApplySuspension(ctx context.Context, id string, sus models.Suspension) error {
	update := bson.M{"$inc": bson.M{"suspension_count": 1}}
	if sus.Permanent {
		update["$set"] = bson.M{"is_permanently_banned": true}
		update["$unset"] = bson.M{"suspended_until": ""}
	} else {
		update["$set"] = bson.M{"suspended_until": sus.Until, "is_permanently_banned": false}
	}
	return s.updateOne(ctx, id, update)
}

func (s *MongoUserStore) ClearSuspension(ctx context.Context, id string) error {
	return s.updateOne(ctx, id, bson.M{
		"$set":   bson.M{"is_permanently_banned": false},
		"$unset": bson.M{"suspended_until": ""},
	})
}

func (s *MongoUserStore) SetArtistLevel(ctx context.Context, id string, level models.ArtistLevel) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"artist_level": level}})
}

func (s *MongoUserStore) SetAdmin(ctx context.Context, id string, admin bool) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"is_admin": admin}})
}

// AdjustNP applies delta in a single pipeline update so concurrent
// adjustments never interleave a read and a write.
func (s *MongoUserStore) AdjustNP(ctx context.Context, id string, delta int64) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"np": bson.M{"$max": bson.A{
				int64(0),
				bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$np", int64(0)}}, delta}},
			}},
		}}},
	}
	var prev models.UserAccount
	err := s.usersCol.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, 0, ErrUserNotFound
	}
	if err != nil {
		return 0, 0, err
	}

	after := prev.NP + delta
	if after < 0 {
		after = 0
	}
	return prev.NP, after, nil
}

func (s *MongoUserStore) PromoteToArtist(ctx context.Context, id string) error {
	return s.updateOne(ctx, id, bson.M{
		"$set":   bson.M{"is_artist": true, "artist_level": models.ArtistLevelRookie},
		"$unset": bson.M{"artist_application_status": ""},
	})
}

func (s *MongoUserStore) SetApplicationStatus(ctx context.Context, id, status string, at *time.Time) error {
	set := bson.M{"artist_application_status": status}
	if at != nil {
		set["rejected_at"] = *at
	}
	return s.updateOne(ctx, id, bson.M{"$set": set})
}

func (s *MongoUserStore) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// MongoTransactionStore holds the append-only NP transaction log.
type MongoTransactionStore struct {
	col *mongo.Collection
}

func NewMongoTransactionStore(ctx context.Context, m *storage.Mongo) *MongoTransactionStore {
	col := m.Collection("transactions")
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "from_user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "to_user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return &MongoTransactionStore{col: col}
}

func (s *MongoTransactionStore) InsertTransaction(ctx context.Context, rec models.TransactionRecord) error {
	_, err := s.col.InsertOne(ctx, rec)
	return err
}

func (s *MongoTransactionStore) ListForUser(ctx context.Context, userID string) ([]models.TransactionRecord, error) {
	cur, err := s.col.Find(ctx,
		bson.M{"$or": bson.A{
			bson.M{"from_user_id": userID},
			bson.M{"to_user_id": userID},
		}},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	out := make([]models.TransactionRecord, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GrantAdmin marks id as an admin, creating the account document if the
// user has never signed in to the app.
func (s *MongoUserStore) GrantAdmin(ctx context.Context, id, email string) error {
	set := bson.M{"is_admin": true}
	if email != "" {
		set["email"] = email
	}
	_, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"np": int64(0), "suspension_count": 0},
	}, options.Update().SetUpsert(true))
	return err
}
