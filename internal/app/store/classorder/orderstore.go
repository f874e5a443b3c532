// internal/app/store/classorder/orderstore.go
package orderstore

import (
	"context"

	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/dalemusser/classreserve/internal/domain/ordering"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the class_order collection, which holds a single
// document carrying the admin display order of class ids.
//
// Concurrent reorder submissions race and the last write wins; no
// merge-of-merges is attempted.
type Store struct {
	c       *mongo.Collection
	classes *mongo.Collection
}

// New creates a new order store. It also needs the classes collection to
// seed the initial ordering lazily.
func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("class_order"),
		classes: db.Collection("classes"),
	}
}

// Get returns the current ordering, lazily seeding it from class creation
// time (newest first) when no ordering document exists yet.
func (s *Store) Get(ctx context.Context) ([]primitive.ObjectID, error) {
	var doc models.ClassOrder
	err := s.c.FindOne(ctx, bson.M{}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return s.seed(ctx)
	}
	if err != nil {
		return nil, err
	}
	return doc.IDs, nil
}

// Set replaces the stored ordering wholesale (upsert, last write wins).
func (s *Store) Set(ctx context.Context, ids []primitive.ObjectID) error {
	if ids == nil {
		ids = []primitive.ObjectID{}
	}
	update := bson.M{
		"$set":         bson.M{"ids": ids},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{}, update, opts)
	return err
}

// PrependClass puts a newly created class id at the front of the ordering.
func (s *Store) PrependClass(ctx context.Context, id primitive.ObjectID) error {
	ids, err := s.Get(ctx)
	if err != nil {
		return err
	}
	return s.Set(ctx, ordering.Prepend(ids, id))
}

// RemoveClass drops a deleted class id from the ordering if present.
func (s *Store) RemoveClass(ctx context.Context, id primitive.ObjectID) error {
	ids, err := s.Get(ctx)
	if err != nil {
		return err
	}
	return s.Set(ctx, ordering.Remove(ids, id))
}

// seed derives the initial ordering from class creation time, newest first,
// and persists it so later reads and reorders work against a stable document.
func (s *Store) seed(ctx context.Context) ([]primitive.ObjectID, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"_id": 1})
	cur, err := s.classes.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	if err := s.Set(ctx, ids); err != nil {
		return nil, err
	}
	return ids, nil
}
