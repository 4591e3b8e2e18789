package models

import "gorm.io/gorm"

// RoleAdmin is the only privileged role value. Any other value (or an empty
// role) is treated as a regular, non-privileged user.
const RoleAdmin = "admin"

// User represents a registered user of the agency site.
// Email is stored lowercase; normalization happens in the service layer so the
// unique index always compares canonical values.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	FirstName    string `json:"firstName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	LastName     string `json:"lastName" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password     string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role         string `json:"role,omitempty" gorm:"type:varchar(50)"`
	Gender       string `json:"gender,omitempty" gorm:"type:varchar(20)"`
	ProfileImage string `json:"profileImage,omitempty" gorm:"type:varchar(500)"`
	gorm.Model          // CreatedAt, UpdatedAt, DeletedAt
}

// IsAdmin reports whether this user holds the elevated role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
