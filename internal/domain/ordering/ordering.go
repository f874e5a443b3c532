// internal/domain/ordering/ordering.go

// Package ordering merges a client-submitted reordering of class ids back
// into the authoritative display sequence.
//
// The admin UI only sends back the ids it actually dragged around, a subset
// of whatever it fetched. Between that fetch and the submit, other admin
// actions may have prepended new classes or deleted existing ones, so the
// submitted list cannot simply replace the stored one.
package ordering

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reconcile overlays the client's requested relative order onto the
// authoritative sequence.
//
// Walking current in order, each slot whose id appears in subset is refilled
// with the next unconsumed id from subset; every other slot passes through
// unchanged. So the subset's ids are redistributed, in the client's order,
// across exactly the positions that subset previously occupied.
//
// Ids in subset that are no longer in current (deleted concurrently) are
// ignored. The result always has len(current) entries.
func Reconcile(current, subset []primitive.ObjectID) []primitive.ObjectID {
	members := make(map[primitive.ObjectID]struct{}, len(subset))
	for _, id := range subset {
		members[id] = struct{}{}
	}

	merged := make([]primitive.ObjectID, 0, len(current))
	cursor := 0
	for _, id := range current {
		if _, ok := members[id]; ok {
			// Skip over submitted ids that no longer exist in current.
			for cursor < len(subset) {
				next := subset[cursor]
				cursor++
				if contains(current, next) {
					id = next
					break
				}
			}
		}
		merged = append(merged, id)
	}
	return merged
}

// Remove returns a copy of ids with every occurrence of id removed.
func Remove(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Prepend puts id at the front of ids, dropping any existing occurrence so
// an id never appears twice.
func Prepend(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids)+1)
	out = append(out, id)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
