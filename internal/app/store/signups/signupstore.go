// internal/app/store/signups/signupstore.go
package signupstore

import (
	"context"
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/dalemusser/classreserve/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the signups collection, the booking ledger.
type Store struct {
	c *mongo.Collection
}

// New creates a new signup store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("signups")}
}

// dayRange builds the [midnight, nextMidnight) filter for one calendar day.
// Stored selected_date values may carry time-of-day noise, so ledger queries
// must never use timestamp equality.
func dayRange(classID primitive.ObjectID, day time.Time) bson.M {
	start := schedule.Midnight(day)
	return bson.M{
		"selected_class": classID,
		"selected_date": bson.M{
			"$gte": start,
			"$lt":  start.AddDate(0, 0, 1),
		},
	}
}

// CountForClassOnDay returns the number of confirmed signups for one
// occurrence of one class.
func (s *Store) CountForClassOnDay(ctx context.Context, classID primitive.ObjectID, day time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, dayRange(classID, day))
}

// Create inserts a new signup and returns it with its generated id and
// created_at set. Signups are append-only; there is no update path.
func (s *Store) Create(ctx context.Context, signup models.SignUp) (models.SignUp, error) {
	signup.ID = primitive.NewObjectID()
	signup.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, signup); err != nil {
		return models.SignUp{}, err
	}
	return signup, nil
}

// ListAll returns every signup, oldest first. Used by the attendance export.
func (s *Store) ListAll(ctx context.Context) ([]models.SignUp, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var signups []models.SignUp
	if err := cur.All(ctx, &signups); err != nil {
		return nil, err
	}
	return signups, nil
}

// DeleteForClass removes every signup belonging to a class. Used when the
// class itself is deleted. Returns the number removed.
func (s *Store) DeleteForClass(ctx context.Context, classID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"selected_class": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
