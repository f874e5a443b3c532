// internal/domain/models/signup.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoInsurance is the sentinel insurance choice that waives the member-id
// requirement.
const NoInsurance = "Other/None"

// SignUp is a confirmed reservation of one person into one occurrence of one
// class. SignUps are created only by the booking service and never mutated;
// they are deleted in bulk when the parent class is deleted.
type SignUp struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SelectedClass primitive.ObjectID `bson:"selected_class" json:"selected_class"`

	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`

	Insurance         string `bson:"insurance" json:"insurance"`
	InsuranceMemberID string `bson:"insurance_member_id,omitempty" json:"insurance_member_id,omitempty"`
	GymMembership     string `bson:"gym_membership,omitempty" json:"gym_membership,omitempty"`

	// SelectedDate is the occurrence date being reserved. Only the calendar
	// day is significant; stored values may carry time-of-day noise, so all
	// ledger queries match on a [midnight, nextMidnight) range.
	SelectedDate time.Time `bson:"selected_date" json:"selected_date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// RequiresMemberID reports whether the chosen insurance requires an
// insurance member id on the signup form.
func (s *SignUp) RequiresMemberID() bool {
	return s.Insurance != "" && s.Insurance != NoInsurance
}
