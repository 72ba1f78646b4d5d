package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dkeye/Whisper/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DialMongo connects and pings so a bad URI fails at startup, not on the
// first chat message.
func DialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(10 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type chatMessageDoc struct {
	ChatKey string    `bson:"chat_key"`
	Sender  string    `bson:"sender_id"`
	Kind    string    `bson:"kind"`
	Body    string    `bson:"body"`
	Origin  string    `bson:"origin"`
	At      time.Time `bson:"at"`
}

// MongoRecorder is the production transcript store.
type MongoRecorder struct {
	coll *mongo.Collection
}

func NewMongoRecorder(db *mongo.Database) *MongoRecorder {
	return &MongoRecorder{coll: db.Collection("chat_messages")}
}

func (r *MongoRecorder) Record(ctx context.Context, e domain.TranscriptEntry) (time.Time, error) {
	at := time.Now().UTC()
	doc := chatMessageDoc{
		ChatKey: e.ChatKey,
		Sender:  string(e.Sender),
		Kind:    string(e.Kind),
		Body:    e.Body,
		Origin:  e.Origin,
		At:      at,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return time.Time{}, fmt.Errorf("insert transcript entry: %w", err)
	}
	return at, nil
}
