// Package mongostore is a reconcile.Store over a MongoDB collection.
package mongostore

import (
	"context"
	"fmt"
	"storygraph-backend/internal/reconcile"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	Uri        string `json:"uri"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

type note struct {
	Id        string    `bson:"_id"`
	BookTitle string    `bson:"book_title"`
	Author    string    `bson:"author"`
	Date      string    `bson:"date"`
	Progress  *float64  `bson:"progress"`
	BookId    string    `bson:"book_id"`
	Status    string    `bson:"status"`
	Note      *string   `bson:"note"`
	CreatedAt time.Time `bson:"created_at"`
}

func (n note) record() reconcile.Record {
	return reconcile.Record{
		Id:        n.Id,
		BookTitle: n.BookTitle,
		Author:    n.Author,
		Date:      n.Date,
		Progress:  n.Progress,
		BookId:    n.BookId,
		Status:    n.Status,
		Note:      n.Note,
		CreatedAt: n.CreatedAt,
	}
}

type Store struct {
	client *mongo.Client
	notes  *mongo.Collection
}

// Open connects to the server and makes sure the identity index exists.
func Open(ctx context.Context, config Config) (Store, error) {
	if config.Database == "" {
		config.Database = "storygraph"
	}
	if config.Collection == "" {
		config.Collection = "notes"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Uri))
	if err != nil {
		return Store{}, fmt.Errorf("connect to mongodb: %w", err)
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		client.Disconnect(context.Background())
		return Store{}, fmt.Errorf("ping mongodb: %w", err)
	}

	notes := client.Database(config.Database).Collection(config.Collection)
	_, err = notes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "book_title", Value: 1},
			{Key: "author", Value: 1},
			{Key: "date", Value: 1},
		},
	})
	if err != nil {
		client.Disconnect(context.Background())
		return Store{}, fmt.Errorf("create identity index: %w", err)
	}

	return Store{client: client, notes: notes}, nil
}

func (s Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s Store) find(ctx context.Context, filter bson.M) ([]reconcile.Record, error) {
	cursor, err := s.notes.Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []reconcile.Record
	for cursor.Next(ctx) {
		var n note
		err := cursor.Decode(&n)
		if err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		records = append(records, n.record())
	}
	return records, cursor.Err()
}

// Query matches on the full identity. A nil progress is a null filter, which
// also matches notes stored without the field.
func (s Store) Query(ctx context.Context, filter reconcile.Filter) ([]reconcile.Record, error) {
	var progress any
	if filter.Progress != nil {
		progress = *filter.Progress
	}
	return s.find(ctx, bson.M{
		"book_title": filter.BookTitle,
		"author":     filter.Author,
		"date":       filter.Date,
		"progress":   progress,
	})
}

func (s Store) Create(ctx context.Context, record reconcile.Record) (reconcile.Record, error) {
	record.Id = uuid.NewString()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	// bson keeps milliseconds
	record.CreatedAt = record.CreatedAt.Truncate(time.Millisecond)

	_, err := s.notes.InsertOne(ctx, note{
		Id:        record.Id,
		BookTitle: record.BookTitle,
		Author:    record.Author,
		Date:      record.Date,
		Progress:  record.Progress,
		BookId:    record.BookId,
		Status:    record.Status,
		Note:      record.Note,
		CreatedAt: record.CreatedAt,
	})
	if err != nil {
		return reconcile.Record{}, err
	}
	return record, nil
}

// List returns every note, oldest first.
func (s Store) List(ctx context.Context) ([]reconcile.Record, error) {
	return s.find(ctx, bson.M{})
}
