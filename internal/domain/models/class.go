// internal/domain/models/class.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frequency values a class definition may carry. Anything else is treated
// as "never occurs" by the schedule package.
const (
	FrequencyNone     = "none"
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
)

// ValidFrequencies lists the accepted frequency values in display order.
var ValidFrequencies = []string{
	FrequencyNone,
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyBiWeekly,
	FrequencyMonthly,
}

// IsValidFrequency reports whether f is one of the accepted frequency values.
func IsValidFrequency(f string) bool {
	for _, v := range ValidFrequencies {
		if f == v {
			return true
		}
	}
	return false
}

// Class is a scheduled activity template. A single Class document describes a
// whole series: the anchor start date plus a frequency expand into concrete
// occurrence dates (see internal/domain/schedule).
//
// Admin edits mutate the document in place. Existing signups are NOT
// re-validated when the definition changes; a signup records the occurrence
// date that was valid at the time it was accepted.
type Class struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"` // sanitized HTML
	Sponsor     string             `bson:"sponsor,omitempty" json:"sponsor,omitempty"`
	Trainer     string             `bson:"trainer,omitempty" json:"trainer,omitempty"`

	// StartDate anchors the series; occurrences never precede it. Only the
	// calendar day matters for occurrence math, but the stored value keeps the
	// session start time-of-day for display.
	StartDate time.Time  `bson:"start_date" json:"start_date"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"` // inclusive bound; nil = unbounded
	EndTime   string     `bson:"end_time,omitempty" json:"end_time,omitempty"` // display only, e.g. "10:30"

	// Size is the per-occurrence capacity. The signup ledger for one calendar
	// day must not exceed it at accept time.
	Size int `bson:"size" json:"size"`

	Frequency string `bson:"frequency" json:"frequency"`
	// Days holds weekday numbers (0=Sunday..6=Saturday); meaningful only for
	// weekly and bi-weekly frequencies.
	Days []int `bson:"days,omitempty" json:"days,omitempty"`

	// DaysPriorCanSignUp limits how far ahead a signup may target an
	// occurrence. Zero means unrestricted.
	DaysPriorCanSignUp int `bson:"days_prior_can_sign_up" json:"days_prior_can_sign_up"`

	// Fee in minor units (cents); displayed divided by 100.
	Fee int64 `bson:"fee" json:"fee"`

	// Uploaded card image, stored through the storage backend.
	ImagePath string `bson:"image_path,omitempty" json:"-"`
	ImageName string `bson:"image_name,omitempty" json:"image_name,omitempty"`
	ImageType string `bson:"image_type,omitempty" json:"image_type,omitempty"` // "image/png" or "image/jpeg"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasImage returns true if a card image has been uploaded for this class.
func (c *Class) HasImage() bool {
	return c.ImagePath != ""
}

// SeriesEnded reports whether the class can no longer occur on or after the
// given day: a bounded series whose end date has passed, or a one-off whose
// anchor day has passed.
func (c *Class) SeriesEnded(day time.Time) bool {
	y, m, d := day.UTC().Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if c.Frequency == FrequencyNone {
		sy, sm, sd := c.StartDate.UTC().Date()
		return time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC).Before(day)
	}
	if c.EndDate == nil {
		return false
	}
	ey, em, ed := c.EndDate.UTC().Date()
	return time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Before(day)
}

// FeeDisplay renders the fee in major units, e.g. 1550 -> "15.50".
func (c *Class) FeeDisplay() string {
	return fmt.Sprintf("%d.%02d", c.Fee/100, c.Fee%100)
}
