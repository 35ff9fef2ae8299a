package rag

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const transcriptCollection = "rag_transcripts"

// MongoHistory stores transcripts in a MongoDB collection.
type MongoHistory struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongoHistory dials MongoDB and verifies the connection with a ping.
func ConnectMongoHistory(ctx context.Context, uri, database string) (*MongoHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoHistory{client: client, coll: client.Database(database).Collection(transcriptCollection)}, nil
}

func (m *MongoHistory) Append(ctx context.Context, t Transcript) error {
	_, err := m.coll.InsertOne(ctx, t)
	return err
}

func (m *MongoHistory) Latest(ctx context.Context, limit int) ([]Transcript, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := m.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Transcript{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoHistory) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
