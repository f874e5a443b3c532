// internal/domain/models/adminkey.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminKey is an issued admin credential. The opaque key handed to the client
// is never stored; we keep a bcrypt digest for verification and a SHA-256
// lookup value so the document can be found without scanning the collection.
//
// Keys are created on login and removed when an expiry check fails or the
// key is explicitly revoked.
type AdminKey struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	KeyLookup string             `bson:"key_lookup"` // SHA-256 hex of the opaque key
	KeyHash   []byte             `bson:"key_hash"`   // bcrypt digest of the opaque key
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Expired reports whether the key is past its expiry at the given instant.
func (k *AdminKey) Expired(now time.Time) bool {
	return !now.Before(k.ExpiresAt)
}
