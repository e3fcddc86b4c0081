package storage

import (
	"context"
	"crypto/tls"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo holds the shared client used by every store.
type Mongo struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

// ConnectMongo dials and pings the cluster. With transactions disabled,
// WithTransaction runs its callback without a session (standalone servers
// cannot run multi-document transactions).
func ConnectMongo(ctx context.Context, mongoURI, dbName string, transactions bool) (*Mongo, error) {
	// Atlas occasionally fails TLS negotiation unless TLS 1.2 is forced.
	opts := options.Client().ApplyURI(mongoURI)
	if opts.TLSConfig != nil {
		opts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS12,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Printf("MongoDB connected: db=%s transactions=%v", dbName, transactions)
	return &Mongo{client: client, db: client.Database(dbName), transactions: transactions}, nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a multi-document transaction. The ctx passed
// to fn carries the session and must be used for every operation in it.
func (m *Mongo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.transactions {
		return fn(ctx)
	}
	sess, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
