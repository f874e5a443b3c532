package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/classreserve/internal/app/booking"
	classstore "github.com/dalemusser/classreserve/internal/app/store/classes"
	"github.com/dalemusser/classreserve/internal/app/system/clock"
	"github.com/dalemusser/classreserve/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeClasses serves one class by id.
type fakeClasses struct {
	class *models.Class
}

func (f *fakeClasses) GetByID(_ context.Context, id primitive.ObjectID) (*models.Class, error) {
	if f.class != nil && f.class.ID == id {
		c := *f.class
		return &c, nil
	}
	return nil, classstore.ErrNotFound
}

// fakeLedger counts in-memory signups keyed by calendar day.
type fakeLedger struct {
	counts  map[string]int64
	created []models.SignUp
	failOn  error
}

func dayKey(classID primitive.ObjectID, day time.Time) string {
	return classID.Hex() + "/" + day.UTC().Format("2006-01-02")
}

func (f *fakeLedger) CountForClassOnDay(_ context.Context, classID primitive.ObjectID, day time.Time) (int64, error) {
	if f.failOn != nil {
		return 0, f.failOn
	}
	return f.counts[dayKey(classID, day)], nil
}

func (f *fakeLedger) Create(_ context.Context, signup models.SignUp) (models.SignUp, error) {
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	signup.ID = primitive.NewObjectID()
	f.counts[dayKey(signup.SelectedClass, signup.SelectedDate)]++
	f.created = append(f.created, signup)
	return signup, nil
}

func weeklyClass(size int) *models.Class {
	return &models.Class{
		ID:        primitive.NewObjectID(),
		Title:     "Morning Yoga",
		StartDate: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), // a Monday
		Size:      size,
		Frequency: models.FrequencyWeekly,
		Days:      []int{1, 3}, // Mon, Wed
	}
}

func newService(class *models.Class, ledger *fakeLedger, now time.Time) *booking.Service {
	return booking.New(&fakeClasses{class: class}, ledger, clock.Fixed{T: now})
}

func validRequest(class *models.Class) booking.Request {
	return booking.Request{
		ClassID:   class.ID,
		Date:      "2024-04-08", // a Monday after the anchor
		Name:      "Pat Jones",
		Phone:     "5551234567",
		Insurance: models.NoInsurance,
	}
}

var testNow = time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC)

func TestAttempt_Accepts(t *testing.T) {
	class := weeklyClass(10)
	ledger := &fakeLedger{}
	svc := newService(class, ledger, testNow)

	signup, err := svc.Attempt(context.Background(), validRequest(class))
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if signup.ID.IsZero() {
		t.Error("expected signup to be assigned an id")
	}
	if signup.SelectedClass != class.ID {
		t.Errorf("SelectedClass = %v, want %v", signup.SelectedClass, class.ID)
	}
	if got := signup.SelectedDate; !got.Equal(time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("SelectedDate = %v", got)
	}
	if len(ledger.created) != 1 {
		t.Fatalf("expected exactly one insert, got %d", len(ledger.created))
	}
}

func TestAttempt_UnknownClass(t *testing.T) {
	class := weeklyClass(10)
	svc := newService(class, &fakeLedger{}, testNow)

	req := validRequest(class)
	req.ClassID = primitive.NewObjectID()

	_, err := svc.Attempt(context.Background(), req)
	if !errors.Is(err, booking.ErrClassNotFound) {
		t.Errorf("Attempt() error = %v, want ErrClassNotFound", err)
	}
}

func TestAttempt_BadDate(t *testing.T) {
	class := weeklyClass(10)
	ledger := &fakeLedger{}
	svc := newService(class, ledger, testNow)

	for _, date := range []string{"", "04/08/2024", "2024-13-40", "next tuesday"} {
		req := validRequest(class)
		req.Date = date
		_, err := svc.Attempt(context.Background(), req)
		if !errors.Is(err, booking.ErrInvalidDate) {
			t.Errorf("date %q: error = %v, want ErrInvalidDate", date, err)
		}
	}
	if len(ledger.created) != 0 {
		t.Errorf("expected no inserts on rejection, got %d", len(ledger.created))
	}
}

func TestAttempt_NotAClassDay(t *testing.T) {
	class := weeklyClass(10)
	svc := newService(class, &fakeLedger{}, testNow)

	req := validRequest(class)
	req.Date = "2024-04-09" // a Tuesday

	_, err := svc.Attempt(context.Background(), req)
	if !errors.Is(err, booking.ErrNotAClassDay) {
		t.Errorf("Attempt() error = %v, want ErrNotAClassDay", err)
	}
}

func TestAttempt_OutsideWindow(t *testing.T) {
	class := weeklyClass(10)
	class.DaysPriorCanSignUp = 2
	svc := newService(class, &fakeLedger{}, testNow) // Apr 5

	req := validRequest(class)
	req.Date = "2024-04-10" // five days out

	_, err := svc.Attempt(context.Background(), req)
	var we *booking.WindowError
	if !errors.As(err, &we) {
		t.Fatalf("Attempt() error = %v, want WindowError", err)
	}
	if we.DaysPrior != 2 {
		t.Errorf("WindowError.DaysPrior = %d, want 2", we.DaysPrior)
	}
}

func TestAttempt_MonthlyWindowScenario(t *testing.T) {
	// Monthly class on the 15th, sign-ups open two days ahead. On the 14th
	// next month's occurrence is out of reach but tomorrow's is bookable.
	class := &models.Class{
		ID:                 primitive.NewObjectID(),
		Title:              "Nutrition Clinic",
		StartDate:          time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		Size:               10,
		Frequency:          models.FrequencyMonthly,
		DaysPriorCanSignUp: 2,
	}
	ledger := &fakeLedger{}
	now := time.Date(2024, 4, 14, 10, 0, 0, 0, time.UTC)
	svc := newService(class, ledger, now)

	req := validRequest(class)
	req.Date = "2024-05-15"

	_, err := svc.Attempt(context.Background(), req)
	var we *booking.WindowError
	if !errors.As(err, &we) {
		t.Fatalf("next-month attempt error = %v, want WindowError", err)
	}
	if len(ledger.created) != 0 {
		t.Fatalf("expected no inserts on rejection, got %d", len(ledger.created))
	}

	req.Date = "2024-04-15"
	if _, err := svc.Attempt(context.Background(), req); err != nil {
		t.Errorf("tomorrow attempt error = %v", err)
	}
	if len(ledger.created) != 1 {
		t.Errorf("inserts = %d, want 1", len(ledger.created))
	}
}

func TestAttempt_InsuranceMemberID(t *testing.T) {
	class := weeklyClass(10)
	svc := newService(class, &fakeLedger{}, testNow)

	req := validRequest(class)
	req.Insurance = "Acme Health"
	req.InsuranceMemberID = ""

	_, err := svc.Attempt(context.Background(), req)
	if !errors.Is(err, booking.ErrMissingInsuranceID) {
		t.Errorf("Attempt() error = %v, want ErrMissingInsuranceID", err)
	}

	// A member id satisfies the rule.
	req.InsuranceMemberID = "AH-12345"
	if _, err := svc.Attempt(context.Background(), req); err != nil {
		t.Errorf("Attempt() with member id error = %v", err)
	}

	// Declining insurance waives it.
	req.Insurance = models.NoInsurance
	req.InsuranceMemberID = ""
	if _, err := svc.Attempt(context.Background(), req); err != nil {
		t.Errorf("Attempt() with no insurance error = %v", err)
	}
}

func TestAttempt_CapacityScenario(t *testing.T) {
	class := weeklyClass(2)
	ledger := &fakeLedger{}
	svc := newService(class, ledger, testNow)

	req := validRequest(class)

	for i := 0; i < 2; i++ {
		if _, err := svc.Attempt(context.Background(), req); err != nil {
			t.Fatalf("attempt %d: error = %v", i+1, err)
		}
	}

	_, err := svc.Attempt(context.Background(), req)
	if !errors.Is(err, booking.ErrClassFull) {
		t.Errorf("third attempt error = %v, want ErrClassFull", err)
	}
	if len(ledger.created) != 2 {
		t.Errorf("inserts = %d, want 2", len(ledger.created))
	}
}

func TestAttempt_OtherDateUnaffectedByFullDay(t *testing.T) {
	class := weeklyClass(1)
	ledger := &fakeLedger{}
	svc := newService(class, ledger, testNow)

	req := validRequest(class)
	if _, err := svc.Attempt(context.Background(), req); err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if _, err := svc.Attempt(context.Background(), req); !errors.Is(err, booking.ErrClassFull) {
		t.Fatalf("same-day attempt error = %v, want ErrClassFull", err)
	}

	req.Date = "2024-04-10" // the Wednesday occurrence
	if _, err := svc.Attempt(context.Background(), req); err != nil {
		t.Errorf("other-date attempt error = %v", err)
	}
}

func TestAttempt_NormalizesContactFields(t *testing.T) {
	class := weeklyClass(10)
	ledger := &fakeLedger{}
	svc := newService(class, ledger, testNow)

	req := validRequest(class)
	req.Name = "  pat   jones "
	req.Phone = "555 123 4567"

	signup, err := svc.Attempt(context.Background(), req)
	if err != nil {
		t.Fatalf("Attempt() error = %v", err)
	}
	if signup.Name != "pat jones" {
		t.Errorf("Name = %q", signup.Name)
	}
	if signup.Phone != "(555) 123-4567" {
		t.Errorf("Phone = %q", signup.Phone)
	}
}

func TestAttempt_LedgerFailurePropagates(t *testing.T) {
	class := weeklyClass(10)
	boom := errors.New("ledger down")
	svc := newService(class, &fakeLedger{failOn: boom}, testNow)

	_, err := svc.Attempt(context.Background(), validRequest(class))
	if !errors.Is(err, boom) {
		t.Errorf("Attempt() error = %v, want ledger failure", err)
	}
}

func TestOccupancyOn(t *testing.T) {
	class := weeklyClass(2)
	ledger := &fakeLedger{}
	svc := newService(class, ledger, testNow)

	occ, err := svc.OccupancyOn(context.Background(), class.ID, "2024-04-08")
	if err != nil {
		t.Fatalf("OccupancyOn() error = %v", err)
	}
	if occ.Count != 0 || occ.Capacity != 2 || occ.Full {
		t.Errorf("empty occupancy = %+v", occ)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Attempt(context.Background(), validRequest(class)); err != nil {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}

	occ, err = svc.OccupancyOn(context.Background(), class.ID, "2024-04-08")
	if err != nil {
		t.Fatalf("OccupancyOn() error = %v", err)
	}
	if occ.Count != 2 || !occ.Full {
		t.Errorf("full occupancy = %+v", occ)
	}

	if _, err := svc.OccupancyOn(context.Background(), class.ID, "2024-04-09"); !errors.Is(err, booking.ErrNotAClassDay) {
		t.Errorf("non-occurrence date error = %v, want ErrNotAClassDay", err)
	}
}
