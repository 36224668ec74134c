package models

import "gorm.io/gorm"

// Notification records an outbound message sent to a resident, currently
// only reservation decisions delivered by email.
type Notification struct {
	gorm.Model
	UserID        uint   `json:"userId" gorm:"not null;index"`
	User          User   `json:"user"`
	ReservationID *uint  `json:"reservationId"`
	Kind          string `json:"kind" gorm:"size:32"` // reservation_approved | reservation_rejected
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	Sent          bool   `json:"sent" gorm:"default:false"`
}
