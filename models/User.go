package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	ResidentRole   UserRole = "resident"
	AdminRole      UserRole = "admin"
	SuperAdminRole UserRole = "super_admin"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"-"`
	Role                UserRole       `json:"role" gorm:"size:16;default:'resident'"`
	HouseNumber         string         `json:"houseNumber"`
	Phone               string         `json:"phone"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
	IsVerified          *bool          `json:"isVerified"`
	Reservations        []Reservation  `json:"reservations,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) IsAdmin() bool {
	return u.Role == AdminRole || u.Role == SuperAdminRole
}
