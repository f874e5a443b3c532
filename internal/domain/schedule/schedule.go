// internal/domain/schedule/schedule.go

// Package schedule decides which calendar dates a class definition actually
// runs on, and whether a signup submitted today may target a given date.
//
// Everything here is pure: all date arithmetic is done on UTC midnights so
// the same inputs always produce the same answer regardless of the
// time-of-day or zone noise carried by stored timestamps.
package schedule

import (
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
)

// Midnight truncates t to 00:00:00 UTC on the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a's midnight to b's midnight
// (negative when b precedes a).
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)) / (24 * time.Hour))
}

// IsOccurrence reports whether date is a legitimate occurrence of the class.
//
// The date must fall inside [start_date, end_date] (day granularity, end
// inclusive, missing end = unbounded) and match the class frequency:
//
//	none      the anchor day only
//	daily     every day in bounds
//	weekly    weekday is in Days
//	bi-weekly weekday is in Days, in the "on" week of each fourteen-day
//	          cycle anchored to the start date's week
//	monthly   same day-of-month as the anchor
//
// A monthly anchor on day 29-31 yields no occurrence in months too short to
// reach that day; the series resumes in the next month that has it.
// Unrecognized frequency values never occur.
func IsOccurrence(class *models.Class, date time.Time) bool {
	start := Midnight(class.StartDate)
	day := Midnight(date)

	if day.Before(start) {
		return false
	}
	if class.EndDate != nil && day.After(Midnight(*class.EndDate)) {
		return false
	}

	diffDays := DaysBetween(start, day)

	switch class.Frequency {
	case models.FrequencyNone:
		return day.Equal(start)
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return hasWeekday(class.Days, day.Weekday())
	case models.FrequencyBiWeekly:
		return diffDays%14 < 7 && hasWeekday(class.Days, day.Weekday())
	case models.FrequencyMonthly:
		return day.Day() == start.Day()
	default:
		return false
	}
}

// WithinSignupWindow reports whether a signup submitted on today may target
// the given occurrence date, per the class's DaysPriorCanSignUp setting.
// Zero means unrestricted.
//
// The window alone does not reject past dates (daysAhead may be negative);
// callers are expected to also require the date be a valid occurrence.
func WithinSignupWindow(class *models.Class, target, today time.Time) bool {
	if class.DaysPriorCanSignUp == 0 {
		return true
	}
	return DaysBetween(today, target) <= class.DaysPriorCanSignUp
}

func hasWeekday(days []int, wd time.Weekday) bool {
	for _, d := range days {
		if d == int(wd) {
			return true
		}
	}
	return false
}
