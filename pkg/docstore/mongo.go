package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/glowdesk/bookingkit/pkg/logger"
)

// MongoStore implements Store on top of a MongoDB database using change
// streams for live queries. Each subscription owns one goroutine that
// delivers the initial snapshot and then a fresh full snapshot after every
// matching change event, so deliveries stay strictly sequential.
type MongoStore struct {
	db  *mongo.Database
	log *slog.Logger
}

// MongoStoreOption configures a MongoStore.
type MongoStoreOption func(*MongoStore)

// WithMongoLogger sets the logger for subscription diagnostics.
func WithMongoLogger(log *slog.Logger) MongoStoreOption {
	return func(s *MongoStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewMongoStore wraps an existing database handle.
func NewMongoStore(db *mongo.Database, opts ...MongoStoreOption) *MongoStore {
	s := &MongoStore{
		db:  db,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe opens a change stream on the query's collection. Delete events
// carry no full document, so the stream matches them unconditionally and the
// follow-up re-query filters by salon id.
func (s *MongoStore) Subscribe(ctx context.Context, q Query, onSnapshot SnapshotFunc) (CancelFunc, error) {
	coll := s.db.Collection(q.Collection)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"fullDocument." + FieldSalonID: q.SalonID},
			bson.M{"operationType": "delete"},
		}}}},
	}

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := coll.Watch(streamCtx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("docstore: failed to open change stream for %s: %w", q.Collection, err)
	}

	go s.pump(streamCtx, stream, q, onSnapshot)

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (s *MongoStore) pump(ctx context.Context, stream *mongo.ChangeStream, q Query, onSnapshot SnapshotFunc) {
	defer func() { _ = stream.Close(context.Background()) }()

	deliver := func() {
		snapshot, err := s.fetch(ctx, q)
		if err != nil {
			if ctx.Err() == nil {
				s.log.LogAttrs(ctx, slog.LevelError, "failed to fetch snapshot",
					logger.SalonID(q.SalonID),
					slog.String("collection", q.Collection),
					logger.Error(err),
				)
			}
			return
		}
		onSnapshot(snapshot)
	}

	// Initial full snapshot before any change events.
	deliver()

	for stream.Next(ctx) {
		deliver()
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		s.log.LogAttrs(ctx, slog.LevelError, "change stream terminated",
			logger.SalonID(q.SalonID),
			slog.String("collection", q.Collection),
			logger.Error(err),
		)
	}
}

func (s *MongoStore) fetch(ctx context.Context, q Query) ([]Record, error) {
	filter := bson.M{}
	if q.SalonID != "" {
		filter[FieldSalonID] = q.SalonID
	}

	cursor, err := s.db.Collection(q.Collection).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: FieldCreatedAt, Value: -1}}))
	if err != nil {
		return nil, err
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		id := fmt.Sprint(doc["_id"])
		delete(doc, "_id")
		records = append(records, NewRecord(id, doc))
	}
	return records, nil
}

// Write upserts the document fields by id.
func (s *MongoStore) Write(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.db.Collection(collection).UpdateByID(ctx, id,
		bson.M{"$set": fields},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("docstore: failed to write %s/%s: %w", collection, id, err)
	}
	return nil
}

// Read fetches a single document by id.
func (s *MongoStore) Read(ctx context.Context, collection, id string) (Record, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("docstore: failed to read %s/%s: %w", collection, id, err)
	}

	delete(doc, "_id")
	return NewRecord(id, doc), nil
}
