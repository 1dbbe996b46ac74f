package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo stores each value as a {_id, value} document in a kv collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type kvDoc struct {
	Key   string `bson:"_id"`
	Value int64  `bson:"value"`
}

// NewMongo connects with the Stable API options and pings before returning.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection("kv"),
	}, nil
}

func (m *Mongo) GetInt64(ctx context.Context, key string) (int64, bool, error) {
	var doc kvDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return doc.Value, true, nil
}

func (m *Mongo) SetInt64(ctx context.Context, key string, val int64) error {
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDoc{Key: key, Value: val},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
