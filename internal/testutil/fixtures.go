// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateClass inserts a weekly class anchored at start with the given
// capacity, meeting on the anchor's weekday.
func (f *Fixtures) CreateClass(ctx context.Context, title string, start time.Time, size int) models.Class {
	f.t.Helper()

	class := models.Class{
		ID:        primitive.NewObjectID(),
		Title:     title,
		StartDate: start,
		Size:      size,
		Frequency: models.FrequencyWeekly,
		Days:      []int{int(start.UTC().Weekday())},
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("classes").InsertOne(ctx, class); err != nil {
		f.t.Fatalf("failed to create test class: %v", err)
	}
	return class
}

// CreateSignup inserts a signup for the class on the given day.
func (f *Fixtures) CreateSignup(ctx context.Context, classID primitive.ObjectID, day time.Time, name string) models.SignUp {
	f.t.Helper()

	signup := models.SignUp{
		ID:            primitive.NewObjectID(),
		SelectedClass: classID,
		Name:          name,
		Phone:         "(555) 123-4567",
		Insurance:     models.NoInsurance,
		SelectedDate:  day,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := f.db.Collection("signups").InsertOne(ctx, signup); err != nil {
		f.t.Fatalf("failed to create test signup: %v", err)
	}
	return signup
}
