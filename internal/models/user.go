package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered student account. Items reference users by email, not
// by ID, so anonymous reports stay possible.
type User struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName             string     `gorm:"size:255;not null" json:"full_name"`
	RegistrationNo       string     `gorm:"size:100;not null;uniqueIndex" json:"registration_no"`
	Department           string     `gorm:"size:255;not null" json:"department"`
	CollegeName          string     `gorm:"size:255;not null" json:"college_name"`
	Email                string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password             string     `gorm:"not null" json:"-"`
	ProfilePhoto         string     `gorm:"size:500" json:"profile_photo,omitempty"`
	Role                 string     `gorm:"size:20;default:'user'" json:"role"`
	ResetPasswordToken   string     `gorm:"size:64" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
