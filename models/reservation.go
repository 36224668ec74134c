// models/reservation.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationApproved  ReservationStatus = "approved"
	ReservationRejected  ReservationStatus = "rejected"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

type Reservation struct {
	gorm.Model
	Reference string `json:"reference" gorm:"size:36;uniqueIndex"`

	CommonAreaID uint       `json:"commonAreaId" gorm:"not null;index"`
	CommonArea   CommonArea `json:"commonArea"`
	UserID       uint       `json:"userId" gorm:"not null;index"`
	User         User       `json:"user"`

	ReservationDate time.Time `json:"reservationDate" gorm:"type:date;index"`
	StartTime       string    `json:"startTime" gorm:"size:5"` // "HH:MM"
	EndTime         string    `json:"endTime" gorm:"size:5"`

	Purpose            string `json:"purpose" gorm:"not null"`
	EstimatedAttendees int    `json:"estimatedAttendees" gorm:"default:1"`

	Status       ReservationStatus `json:"status" gorm:"size:12;default:'pending';index"`
	ApprovedByID *uint             `json:"approvedById"`
	ApprovedBy   *User             `json:"approvedBy,omitempty" gorm:"foreignKey:ApprovedByID"`

	// Derived at creation from the area's hourly rate; never recomputed.
	TotalHours float64 `json:"totalHours"`
	TotalCost  float64 `json:"totalCost"`

	AdminNotes string `json:"adminNotes"`
}

// Occupies reports whether the reservation blocks its slot from being
// booked again. Rejected, cancelled and completed reservations never do.
func (r *Reservation) Occupies() bool {
	return r.Status == ReservationPending || r.Status == ReservationApproved
}
