package db

import (
	"context"

	"health-tracker/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EntryStore keeps meals and water logs side by side in one collection.
// Reads hand back raw documents; the caller decides what they are.
type EntryStore struct {
	coll *mongo.Collection
}

func NewEntryStore(coll *mongo.Collection) *EntryStore {
	return &EntryStore{coll: coll}
}

func NewEntryID() string {
	return primitive.NewObjectID().Hex()
}

func (s *EntryStore) Insert(ctx context.Context, entry models.Entry) error {
	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		return errors.Wrapf(err, "could not insert %s entry", entry.Type())
	}
	return nil
}

func (s *EntryStore) InsertMany(ctx context.Context, list []models.Entry) error {
	if len(list) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(list))
	for _, e := range list {
		docs = append(docs, e)
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "could not insert entries")
	}
	return nil
}

// List returns the documents owned by userID, restricted to date when it is
// not empty, ordered by date then id. Each document exposes its key as "id".
func (s *EntryStore) List(ctx context.Context, userID, date string) ([]any, error) {
	filter := bson.M{"userId": userID}
	if date != "" {
		filter["date"] = date
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "could not find entries")
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "could not decode entries")
	}

	out := make([]any, 0, len(docs))
	for _, doc := range docs {
		out = append(out, exposeID(doc))
	}
	return out, nil
}

// Replace overwrites an entry of the same type and owner. It reports false
// when no such entry exists.
func (s *EntryStore) Replace(ctx context.Context, entry models.Entry) (bool, error) {
	filter := bson.M{
		"_id":       entry.EntryID(),
		"userId":    entry.Owner(),
		"entryType": entry.Type(),
	}

	res, err := s.coll.ReplaceOne(ctx, filter, entry)
	if err != nil {
		return false, errors.Wrapf(err, "could not replace entry %s", entry.EntryID())
	}
	return res.MatchedCount > 0, nil
}

func (s *EntryStore) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return false, errors.Wrapf(err, "could not delete entry %s", id)
	}
	return res.DeletedCount > 0, nil
}

func exposeID(doc bson.M) bson.M {
	raw, ok := doc["_id"]
	if !ok {
		return doc
	}
	delete(doc, "_id")

	if _, exists := doc["id"]; exists {
		return doc
	}
	switch id := raw.(type) {
	case string:
		doc["id"] = id
	case primitive.ObjectID:
		doc["id"] = id.Hex()
	default:
		// left without an id, so it will not classify
	}
	return doc
}
