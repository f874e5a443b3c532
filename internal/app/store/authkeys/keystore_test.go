package authkeys_test

import (
	"testing"
	"time"

	"github.com/dalemusser/classreserve/internal/app/store/authkeys"
	"github.com/dalemusser/classreserve/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIssueAndCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := authkeys.New(db)

	key, err := store.Issue(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if key == "" {
		t.Fatal("expected a non-empty key")
	}

	ok, err := store.Check(ctx, key, time.Now().UTC())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !ok {
		t.Error("expected a freshly issued key to check out")
	}

	ok, err = store.Check(ctx, "not-the-key", time.Now().UTC())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Error("expected an unknown key to be rejected")
	}
}

func TestCheck_ExpiredKeyRejectedAndRemoved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := authkeys.New(db)

	key, err := store.Issue(ctx, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	later := time.Now().UTC().Add(2 * time.Minute)
	ok, err := store.Check(ctx, key, later)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Error("expected an expired key to be rejected")
	}

	// Checking an expired key also deletes it.
	n, err := db.Collection("admin_keys").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 0 {
		t.Errorf("expired key still stored, count = %d", n)
	}
}

func TestRevoke(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := authkeys.New(db)

	key, err := store.Issue(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := store.Revoke(ctx, key); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	ok, err := store.Check(ctx, key, time.Now().UTC())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if ok {
		t.Error("expected a revoked key to be rejected")
	}
}

func TestPurgeExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := authkeys.New(db)

	if _, err := store.Issue(ctx, time.Minute); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := store.Issue(ctx, time.Hour); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	n, err := store.PurgeExpired(ctx, time.Now().UTC().Add(5*time.Minute))
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}
}
