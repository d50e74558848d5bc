package db

import (
	"context"
	"errors"
	"log"
	"time"

	coredb "github.com/KanapuramVaishnavi/Core/config/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

/*
* Connect with a bounded server selection timeout
* Ping the primary so an unreachable cluster fails here and not on first use
* Share the database with the common db helpers used by the stores
 */
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Database, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Println("Connected to MongoDB database:", database)
	Client = client
	DB = client.Database(database)
	coredb.DB = DB
	return DB, nil
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	err := Client.Disconnect(ctx)
	Client = nil
	DB = nil
	coredb.DB = nil
	return err
}

// OpenCollections returns nil until Connect succeeds.
func OpenCollections(name string) *mongo.Collection {
	if DB == nil {
		return nil
	}
	return coredb.OpenCollections(name)
}
