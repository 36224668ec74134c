package models

import (
	"time"

	"gorm.io/gorm"
)

// CommonArea is a bookable shared facility (clubhouse, pool, BBQ zone).
// Operating hours are stored as "HH:MM" strings, one daily window shared
// by every open weekday.
type CommonArea struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`

	Capacity    int     `json:"capacity" gorm:"default:0"` // 0 = unlimited
	CostPerHour float64 `json:"costPerHour" gorm:"default:0"`

	IsActive     bool `json:"isActive" gorm:"default:true"`
	IsReservable bool `json:"isReservable" gorm:"default:true"`

	AvailableFrom string `json:"availableFrom" gorm:"default:'08:00'"`
	AvailableTo   string `json:"availableTo" gorm:"default:'22:00'"`

	AvailableMonday    bool `json:"availableMonday" gorm:"default:true"`
	AvailableTuesday   bool `json:"availableTuesday" gorm:"default:true"`
	AvailableWednesday bool `json:"availableWednesday" gorm:"default:true"`
	AvailableThursday  bool `json:"availableThursday" gorm:"default:true"`
	AvailableFriday    bool `json:"availableFriday" gorm:"default:true"`
	AvailableSaturday  bool `json:"availableSaturday" gorm:"default:true"`
	AvailableSunday    bool `json:"availableSunday" gorm:"default:true"`

	MaxReservationHours    int `json:"maxReservationHours" gorm:"default:4"`
	AdvanceReservationDays int `json:"advanceReservationDays" gorm:"default:30"`

	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:CommonAreaID"`
}

// OpenOn reports whether the area is open on the given weekday.
func (a *CommonArea) OpenOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return a.AvailableMonday
	case time.Tuesday:
		return a.AvailableTuesday
	case time.Wednesday:
		return a.AvailableWednesday
	case time.Thursday:
		return a.AvailableThursday
	case time.Friday:
		return a.AvailableFriday
	case time.Saturday:
		return a.AvailableSaturday
	case time.Sunday:
		return a.AvailableSunday
	}
	return false
}
