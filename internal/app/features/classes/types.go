// internal/app/features/classes/types.go
package classes

import (
	"time"

	"github.com/dalemusser/classreserve/internal/domain/models"
)

// classView is the JSON shape a class is served as. It mirrors the stored
// document plus derived display fields; the storage path never leaves the
// server.
type classView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Sponsor     string `json:"sponsor,omitempty"`
	Trainer     string `json:"trainer,omitempty"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	Size               int    `json:"size"`
	Frequency          string `json:"frequency"`
	Days               []int  `json:"days,omitempty"`
	DaysPriorCanSignUp int    `json:"days_prior_can_sign_up"`

	Fee        int64  `json:"fee"`
	FeeDisplay string `json:"fee_display"`

	HasImage  bool   `json:"has_image"`
	ImageName string `json:"image_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func toView(c *models.Class) classView {
	v := classView{
		ID:                 c.ID.Hex(),
		Title:              c.Title,
		Description:        c.Description,
		Sponsor:            c.Sponsor,
		Trainer:            c.Trainer,
		StartDate:          c.StartDate.UTC().Format("2006-01-02"),
		EndTime:            c.EndTime,
		Size:               c.Size,
		Frequency:          c.Frequency,
		Days:               c.Days,
		DaysPriorCanSignUp: c.DaysPriorCanSignUp,
		Fee:                c.Fee,
		FeeDisplay:         c.FeeDisplay(),
		HasImage:           c.HasImage(),
		ImageName:          c.ImageName,
		CreatedAt:          c.CreatedAt,
	}
	if c.EndDate != nil {
		v.EndDate = c.EndDate.UTC().Format("2006-01-02")
	}
	return v
}
