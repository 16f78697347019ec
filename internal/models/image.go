package models

import "time"

type ImageKind string

const (
	ImagePoster ImageKind = "poster"
	ImageQRCode ImageKind = "qrcode"
)

// Image stores event media (poster, QR code). Deleted ahead of the event
// document during cascade deletion.
type Image struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	EventID    string    `gorm:"not null;index" json:"event_id"`
	Kind       ImageKind `gorm:"type:varchar(20);not null" json:"kind"`
	Data       []byte    `json:"-"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
