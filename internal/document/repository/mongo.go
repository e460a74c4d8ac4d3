package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists records in one MongoDB database, one collection per
// entity type. Identifiers are ObjectIDs assigned before insertion.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// EnsureIndexes creates single-field ascending indexes for the given fields.
// Existing indexes with the same keys are left alone by the server.
func (m *MongoStore) EnsureIndexes(ctx context.Context, collection string, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(fields))
	for _, f := range fields {
		models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
	}
	if _, err := m.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		return classify("create indexes", collection, err)
	}
	return nil
}

func (m *MongoStore) Insert(ctx context.Context, collection string, rec document.Record) (string, error) {
	id := primitive.NewObjectID()
	doc := make(document.Record, len(rec)+1)
	for k, v := range rec {
		doc[k] = v
	}
	doc[document.FieldID] = id
	if _, err := m.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", classify("insert", collection, err)
	}
	return id.Hex(), nil
}

func (m *MongoStore) Find(ctx context.Context, collection string, f query.Filter, limit int) ([]document.Record, error) {
	opts := options.Find().SetLimit(int64(ClampLimit(limit)))
	cur, err := m.db.Collection(collection).Find(ctx, f.BSON(), opts)
	if err != nil {
		return nil, classify("find", collection, err)
	}
	defer cur.Close(ctx)

	out := []document.Record{}
	for cur.Next(ctx) {
		rec := document.Record{}
		if err := cur.Decode(&rec); err != nil {
			return nil, &PersistenceError{Op: "decode", Collection: collection, Err: err}
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, classify("find", collection, err)
	}
	return out, nil
}

func (m *MongoStore) Status(ctx context.Context) Status {
	st := Status{Backend: "mongo", Configured: true, Connected: true, Database: m.db.Name()}
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		st.Err = err
		st.Connected = !isConnectivity(err)
		return st
	}
	sort.Strings(names)
	if len(names) > maxStatusCollections {
		names = names[:maxStatusCollections]
	}
	st.Collections = names
	return st
}

func isConnectivity(err error) bool {
	return errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

func classify(op, collection string, err error) error {
	if isConnectivity(err) {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, op, collection, err)
	}
	return &PersistenceError{Op: op, Collection: collection, Err: err}
}
