package models

import "time"

type Event struct {
	ID                  string     `gorm:"primaryKey" json:"id"`
	Title               string     `gorm:"not null" json:"title"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	OrganizerID         string     `gorm:"not null;index" json:"organizer_id"`
	MaxCapacity         *int       `json:"max_capacity"`
	CurrentCapacity     int        `gorm:"not null;default:0" json:"current_capacity"`
	WaitlistCapacity    *int       `json:"waitlist_capacity,omitempty"`
	RequiresGeolocation bool       `gorm:"not null;default:false" json:"requires_geolocation"`
	PosterImageID       *string    `json:"poster_image_id,omitempty"`
	QRCodeImageID       *string    `json:"qr_code_image_id,omitempty"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// AvailableSlots is the number of attendee seats still open, or 0 when the
// capacity is not configured.
func (e *Event) AvailableSlots() int {
	if e.MaxCapacity == nil {
		return 0
	}
	return *e.MaxCapacity - e.CurrentCapacity
}
