// internal/domain/models/classorder.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassOrder is the admin-controlled display order of classes, kept as a
// single document holding the full sequence of class ids.
//
// The document is created lazily: the first read with no stored order derives
// one from class creation time, newest first. Creating a class prepends its
// id; deleting a class pulls its id.
type ClassOrder struct {
	ID  primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	IDs []primitive.ObjectID `bson:"ids" json:"ids"`
}
