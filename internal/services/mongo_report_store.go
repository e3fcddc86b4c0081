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

// MongoReportStore keeps pending reports and the guilty archive.
type MongoReportStore struct {
	reportsCol *mongo.Collection
	guiltyCol  *mongo.Collection
}

func NewMongoReportStore(ctx context.Context, m *storage.Mongo) *MongoReportStore {
	s := &MongoReportStore{
		reportsCol: m.Collection("reports"),
		guiltyCol:  m.Collection("guilty_reports"),
	}

	// Best-effort indexes.
	_, _ = s.reportsCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}},
	})
	_, _ = s.guiltyCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "reported_user_id", Value: 1}},
	})
	return s
}

func (s *MongoReportStore) ListReports(ctx context.Context, typ models.ContentType) ([]models.ModerationReport, error) {
	filter := bson.M{}
	if typ != "" {
		filter["type"] = typ
	}
	cur, err := s.reportsCol.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.ModerationReport, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoReportStore) GetReport(ctx context.Context, id string) (*models.ModerationReport, error) {
	var r models.ModerationReport
	err := s.reportsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MongoReportStore) CreateReport(ctx context.Context, r models.ModerationReport) error {
	_, err := s.reportsCol.InsertOne(ctx, r)
	return err
}

func (s *MongoReportStore) DeleteReport(ctx context.Context, id string) (bool, error) {
	res, err := s.reportsCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// SaveGuilty writes the verdict under the report's own id.
func (s *MongoReportStore) SaveGuilty(ctx context.Context, g models.GuiltyReport) error {
	_, err := s.guiltyCol.ReplaceOne(ctx, bson.M{"_id": g.ID}, g, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoReportStore) ListGuilty(ctx context.Context) ([]models.GuiltyReport, error) {
	cur, err := s.guiltyCol.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]models.GuiltyReport, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MongoReportStore) DeleteGuilty(ctx context.Context, id string) (bool, error) {
	res, err := s.guiltyCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// MongoContentStore resolves the posts and comments that reports point at.
type MongoContentStore struct {
	db *storage.Mongo
}

func NewMongoContentStore(m *storage.Mongo) *MongoContentStore {
	return &MongoContentStore{db: m}
}

type contentDoc struct {
	ID       string `bson:"_id"`
	Content  string `bson:"content"`
	Nickname string `bson:"nickname"`
	ImageURL string `bson:"image_url"`
}

type contentLocation struct {
	collection string
	filter     bson.M
}

// locations lists where the reported content may live, in lookup order.
// Posts fall back to the owner's fan posts; comments are song replies,
// song comments or post comments depending on the ids the report carries.
func locations(r *models.ModerationReport) []contentLocation {
	switch r.Type {
	case models.ContentPost:
		owner := r.FanPostOwnerID
		if owner == "" {
			owner = r.ReportedUserID
		}
		return []contentLocation{
			{collection: "posts", filter: bson.M{"_id": r.TargetID}},
			{collection: "fan_posts", filter: bson.M{"_id": r.TargetID, "owner_id": owner}},
		}
	case models.ContentComment:
		switch {
		case r.SongID != "" && r.ParentCommentID != "":
			return []contentLocation{{collection: "comment_replies", filter: bson.M{
				"_id": r.TargetID, "song_id": r.SongID, "parent_comment_id": r.ParentCommentID,
			}}}
		case r.SongID != "":
			return []contentLocation{{collection: "song_comments", filter: bson.M{"_id": r.TargetID, "song_id": r.SongID}}}
		case r.PostID != "":
			return []contentLocation{{collection: "post_comments", filter: bson.M{"_id": r.TargetID, "post_id": r.PostID}}}
		}
	}
	return nil
}

func (s *MongoContentStore) FindContent(ctx context.Context, r *models.ModerationReport) (*models.ContentPreview, error) {
	for _, loc := range locations(r) {
		var doc contentDoc
		err := s.db.Collection(loc.collection).FindOne(ctx, loc.filter).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return nil, err
		}
		nickname := doc.Nickname
		if nickname == "" {
			nickname = anonymousNickname
		}
		return &models.ContentPreview{
			ID:       doc.ID,
			Content:  doc.Content,
			Nickname: nickname,
			ImageURL: doc.ImageURL,
		}, nil
	}
	return nil, nil
}

// DeleteContent removes the first location holding the content. Missing
// content reports false without error.
func (s *MongoContentStore) DeleteContent(ctx context.Context, r *models.ModerationReport) (bool, error) {
	for _, loc := range locations(r) {
		res, err := s.db.Collection(loc.collection).DeleteOne(ctx, loc.filter)
		if err != nil {
			return false, err
		}
		if res.DeletedCount > 0 {
			return true, nil
		}
	}
	return false, nil
}
