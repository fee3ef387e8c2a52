package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanketpujari33/todo-list-azguards-technolabs-assignment/internal/util"
)

const (
	connectAttempts = 5
	connectDelay    = 5 * time.Second
	connectTimeout  = 30 * time.Second
)

// ConnectToMongo establishes a MongoDB connection, retrying up to five times
// with a fixed delay between attempts before giving up.
func ConnectToMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := util.Retry(connectAttempts, connectDelay, func() (*mongo.Client, error) {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, err
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return client, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

// EnsureIndexes creates the unique indexes that back duplicate-registration
// detection, plus the lookup indexes used by owner and status queries.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	users := client.Database(dbName).Collection("users")
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	todos := client.Database(dbName).Collection("todos")
	_, err = todos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create todo indexes: %w", err)
	}

	return nil
}
