// internal/app/store/authkeys/keystore.go

// Package authkeys persists issued admin credentials with expiry timestamps.
// It replaces the ad-hoc in-process credential map an earlier revision used:
// keys survive restarts, and expiry is enforced on every check.
package authkeys

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ErrKeyGeneration is returned when no random key material is available.
var ErrKeyGeneration = errors.New("could not generate key material")

// Store provides access to the admin_keys collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin key store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_keys")}
}

// Issue mints a fresh opaque admin key valid for ttl and persists its
// digests. The returned key is the only copy; it is never stored in clear.
func (s *Store) Issue(ctx context.Context, ttl time.Duration) (string, error) {
	raw := securecookie.GenerateRandomKey(32)
	if raw == nil {
		return "", ErrKeyGeneration
	}
	key := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	doc := models.AdminKey{
		ID:        primitive.NewObjectID(),
		KeyLookup: lookup(key),
		KeyHash:   hash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return key, nil
}

// Check reports whether key is a currently valid admin credential at the
// given instant. Expired keys are removed as a side effect, so the
// collection does not accumulate dead credentials.
func (s *Store) Check(ctx context.Context, key string, now time.Time) (bool, error) {
	if key == "" {
		return false, nil
	}

	var doc models.AdminKey
	err := s.c.FindOne(ctx, bson.M{"key_lookup": lookup(key)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if doc.Expired(now) {
		// Best effort cleanup; an expired key is invalid either way.
		_, _ = s.c.DeleteOne(ctx, bson.M{"_id": doc.ID})
		return false, nil
	}

	if bcrypt.CompareHashAndPassword(doc.KeyHash, []byte(key)) != nil {
		return false, nil
	}
	return true, nil
}

// Revoke invalidates a key immediately.
func (s *Store) Revoke(ctx context.Context, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"key_lookup": lookup(key)})
	return err
}

// PurgeExpired removes every key whose expiry has passed. Called
// opportunistically at startup.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// lookup derives the deterministic query key for an opaque credential.
func lookup(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
