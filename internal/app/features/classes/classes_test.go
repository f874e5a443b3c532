package classes

import (
	"bytes"
	"testing"
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyOrder(t *testing.T) {
	mk := func(title string) models.Class {
		return models.Class{ID: primitive.NewObjectID(), Title: title}
	}
	a, b, c := mk("A"), mk("B"), mk("C")
	all := []models.Class{c, b, a} // stored newest first

	got := applyOrder(all, []primitive.ObjectID{a.ID, c.ID, b.ID})
	want := []string{"A", "C", "B"}
	for i, w := range want {
		if got[i].Title != w {
			t.Fatalf("position %d = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestApplyOrder_UnknownAndMissing(t *testing.T) {
	mk := func(title string) models.Class {
		return models.Class{ID: primitive.NewObjectID(), Title: title}
	}
	a, b := mk("A"), mk("B")
	all := []models.Class{b, a}

	// Ordering knows a deleted class and misses B entirely.
	got := applyOrder(all, []primitive.ObjectID{primitive.NewObjectID(), a.ID})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("order = [%s %s], want [A B]", got[0].Title, got[1].Title)
	}
}

type fakeFile struct {
	*bytes.Reader
}

func (fakeFile) Close() error { return nil }

func TestSniffImageType(t *testing.T) {
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 16)...)
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	gif := append([]byte("GIF89a"), make([]byte, 16)...)

	cases := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{"png", png, "image/png", false},
		{"jpeg", jpeg, "image/jpeg", false},
		{"gif rejected", gif, "", true},
		{"empty rejected", nil, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := fakeFile{bytes.NewReader(tc.data)}
			got, err := sniffImageType(f)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("sniffImageType: %v", err)
			}
			if got != tc.want {
				t.Errorf("type = %q, want %q", got, tc.want)
			}
			// The reader must be rewound for the upload that follows.
			if pos, _ := f.Seek(0, 1); pos != 0 {
				t.Errorf("reader position = %d, want 0", pos)
			}
		})
	}
}

func TestToView(t *testing.T) {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	c := &models.Class{
		ID:        primitive.NewObjectID(),
		Title:     "Yoga",
		StartDate: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		EndDate:   &end,
		Size:      10,
		Frequency: models.FrequencyWeekly,
		Fee:       1550,
		ImagePath: "classes/2024/04/abc.png",
		ImageName: "card.png",
	}

	v := toView(c)
	if v.StartDate != "2024-04-01" || v.EndDate != "2024-06-30" {
		t.Errorf("dates = %q / %q", v.StartDate, v.EndDate)
	}
	if v.FeeDisplay != "15.50" {
		t.Errorf("FeeDisplay = %q, want 15.50", v.FeeDisplay)
	}
	if !v.HasImage {
		t.Error("expected HasImage")
	}
}
