// internal/app/store/classes/classstore.go
package classstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a class id does not resolve to a document.
var ErrNotFound = errors.New("class not found")

// Store provides access to the classes collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new class store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("classes")}
}

// GetByID loads a class by ObjectID. Returns ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	var class models.Class
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&class)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// List returns all classes, newest first. The caller applies display
// ordering on top (see the classorder store).
func (s *Store) List(ctx context.Context) ([]models.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Create inserts a new class and returns it with its generated id and
// timestamps set.
func (s *Store) Create(ctx context.Context, class models.Class) (models.Class, error) {
	class.ID = primitive.NewObjectID()
	class.CreatedAt = time.Now().UTC()
	class.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, class); err != nil {
		return models.Class{}, err
	}
	return class, nil
}

// Update replaces the mutable fields of an existing class in place. Existing
// signups are intentionally not re-validated against the new definition.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, class models.Class) error {
	now := time.Now().UTC()
	set := bson.M{
		"title":                  class.Title,
		"description":            class.Description,
		"sponsor":                class.Sponsor,
		"trainer":                class.Trainer,
		"start_date":             class.StartDate,
		"end_date":               class.EndDate,
		"end_time":               class.EndTime,
		"size":                   class.Size,
		"frequency":              class.Frequency,
		"days":                   class.Days,
		"days_prior_can_sign_up": class.DaysPriorCanSignUp,
		"fee":                    class.Fee,
		"updated_at":             &now,
	}
	if class.ImagePath != "" {
		set["image_path"] = class.ImagePath
		set["image_name"] = class.ImageName
		set["image_type"] = class.ImageType
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a class document. Signup cleanup and ordering maintenance
// are the caller's responsibility.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
