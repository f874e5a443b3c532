package signupstore_test

import (
	"testing"
	"time"

	signupstore "github.com/dalemusser/classreserve/internal/app/store/signups"
	"github.com/dalemusser/classreserve/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCountForClassOnDay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	store := signupstore.New(db)

	day := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)
	classID := primitive.NewObjectID()
	otherClass := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		fix.CreateSignup(ctx, classID, day, "Person A")
	}
	// Noise the count must not see: another class, another day.
	fix.CreateSignup(ctx, otherClass, day, "Person B")
	fix.CreateSignup(ctx, classID, day.AddDate(0, 0, 7), "Person C")

	n, err := store.CountForClassOnDay(ctx, classID, day)
	if err != nil {
		t.Fatalf("CountForClassOnDay: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestCountForClassOnDay_TimeOfDayIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	store := signupstore.New(db)

	classID := primitive.NewObjectID()
	// Stored values carry time-of-day noise; the range match must still see
	// them all as the same calendar day.
	fix.CreateSignup(ctx, classID, time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC), "Midnight")
	fix.CreateSignup(ctx, classID, time.Date(2024, 4, 8, 9, 30, 0, 0, time.UTC), "Morning")
	fix.CreateSignup(ctx, classID, time.Date(2024, 4, 8, 23, 59, 59, 0, time.UTC), "Last Minute")

	n, err := store.CountForClassOnDay(ctx, classID, time.Date(2024, 4, 8, 15, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CountForClassOnDay: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestDeleteForClass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	store := signupstore.New(db)

	day := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)
	classID := primitive.NewObjectID()
	survivor := primitive.NewObjectID()

	fix.CreateSignup(ctx, classID, day, "Gone A")
	fix.CreateSignup(ctx, classID, day.AddDate(0, 0, 7), "Gone B")
	fix.CreateSignup(ctx, survivor, day, "Stays")

	n, err := store.DeleteForClass(ctx, classID)
	if err != nil {
		t.Fatalf("DeleteForClass: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].SelectedClass != survivor {
		t.Errorf("remaining signups = %+v, want only the other class's", all)
	}
}
