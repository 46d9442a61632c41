package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records administrative actions (deletions, claim moderation,
// feedback resolution). AdminName is cached for display; TargetID is the
// affected user/item/claim id as a string.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AdminName string    `gorm:"size:255" json:"admin_name"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	TargetID  string    `gorm:"size:100" json:"target_id"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
