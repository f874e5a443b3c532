// internal/app/booking/booking.go

// Package booking decides whether a sign-up request is admitted into a class
// occurrence. Every rule is checked in a fixed order and the first failure
// wins; a signup document is written only when every rule passes.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	classstore "github.com/dalemusser/classreserve/internal/app/store/classes"
	"github.com/dalemusser/classreserve/internal/app/system/clock"
	"github.com/dalemusser/classreserve/internal/app/system/normalize"
	"github.com/dalemusser/classreserve/internal/domain/models"
	"github.com/dalemusser/classreserve/internal/domain/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format for occurrence dates.
const DateLayout = "2006-01-02"

var (
	ErrClassNotFound      = errors.New("class not found")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNotAClassDay       = errors.New("class does not meet on the selected date")
	ErrMissingInsuranceID = errors.New("insurance member id is required")
	ErrClassFull          = errors.New("class is full on the selected date")
)

// WindowError reports a rejection because the occurrence date is further out
// than the class's advance sign-up window allows.
type WindowError struct {
	DaysPrior int
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("sign-ups open %d days before a class", e.DaysPrior)
}

// ClassGetter loads one class by id.
type ClassGetter interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
}

// SignupLedger counts and records signups for a class occurrence.
type SignupLedger interface {
	CountForClassOnDay(ctx context.Context, classID primitive.ObjectID, day time.Time) (int64, error)
	Create(ctx context.Context, signup models.SignUp) (models.SignUp, error)
}

// Request carries the applicant's form data for one occurrence.
type Request struct {
	ClassID           primitive.ObjectID
	Date              string // DateLayout
	Name              string
	Phone             string
	Insurance         string
	InsuranceMemberID string
	GymMembership     string
}

// Service applies the admission rules.
type Service struct {
	classes ClassGetter
	signups SignupLedger
	clock   clock.Clock
}

// New wires a booking service over the given stores.
func New(classes ClassGetter, signups SignupLedger, clk clock.Clock) *Service {
	return &Service{classes: classes, signups: signups, clock: clk}
}

// Attempt runs the admission checks for req and, if all pass, records the
// signup. The capacity check and the insert are two separate operations;
// simultaneous requests can in principle both pass the count. At the volumes
// this kind of portal sees that has never been worth a lock, and an
// occasional over-admit is resolved by the front desk.
func (s *Service) Attempt(ctx context.Context, req Request) (models.SignUp, error) {
	class, err := s.getClass(ctx, req.ClassID)
	if err != nil {
		return models.SignUp{}, err
	}

	day, err := time.ParseInLocation(DateLayout, req.Date, time.UTC)
	if err != nil {
		return models.SignUp{}, ErrInvalidDate
	}

	if !schedule.IsOccurrence(class, day) {
		return models.SignUp{}, ErrNotAClassDay
	}

	if !schedule.WithinSignupWindow(class, day, s.clock.Now()) {
		return models.SignUp{}, &WindowError{DaysPrior: class.DaysPriorCanSignUp}
	}

	signup := models.SignUp{
		SelectedClass:     class.ID,
		Name:              normalize.Name(req.Name),
		Phone:             normalize.Phone(req.Phone),
		Insurance:         strings.TrimSpace(req.Insurance),
		InsuranceMemberID: strings.TrimSpace(req.InsuranceMemberID),
		GymMembership:     strings.TrimSpace(req.GymMembership),
		SelectedDate:      day,
	}
	if signup.RequiresMemberID() && signup.InsuranceMemberID == "" {
		return models.SignUp{}, ErrMissingInsuranceID
	}

	count, err := s.signups.CountForClassOnDay(ctx, class.ID, day)
	if err != nil {
		return models.SignUp{}, err
	}
	if count >= int64(class.Size) {
		return models.SignUp{}, ErrClassFull
	}

	return s.signups.Create(ctx, signup)
}

// Occupancy is the names-free view of one occurrence's fill level.
type Occupancy struct {
	Date     string `json:"date"`
	Count    int64  `json:"count"`
	Capacity int    `json:"capacity"`
	Full     bool   `json:"full"`
}

// getClass folds the store's not-found sentinel into the booking taxonomy.
func (s *Service) getClass(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if errors.Is(err, classstore.ErrNotFound) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return class, nil
}

// OccupancyOn reports how full a class is on a given occurrence date.
// The date must be a real occurrence of the class.
func (s *Service) OccupancyOn(ctx context.Context, classID primitive.ObjectID, date string) (Occupancy, error) {
	class, err := s.getClass(ctx, classID)
	if err != nil {
		return Occupancy{}, err
	}

	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return Occupancy{}, ErrInvalidDate
	}

	if !schedule.IsOccurrence(class, day) {
		return Occupancy{}, ErrNotAClassDay
	}

	count, err := s.signups.CountForClassOnDay(ctx, class.ID, day)
	if err != nil {
		return Occupancy{}, err
	}
	return Occupancy{
		Date:     day.Format(DateLayout),
		Count:    count,
		Capacity: class.Size,
		Full:     count >= int64(class.Size),
	}, nil
}
