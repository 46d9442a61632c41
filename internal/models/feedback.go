package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a user-submitted support message, optionally anonymous.
type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;default:'open'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
