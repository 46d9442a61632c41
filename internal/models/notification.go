package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationMatchFound  = "match_found"
	NotificationClaimUpdate = "claim_update"
	NotificationOther       = "other"
)

// Notification is a per-recipient inbox entry. ItemID is a weak reference:
// no foreign key, so deleting an item leaves its notifications intact.
//
// The partial unique index is the dedup key for match notifications: at most
// one match_found row may exist per (recipient, item). claim_update and other
// rows are not constrained.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Recipient string     `gorm:"size:255;not null;index;uniqueIndex:idx_notifications_match_dedup" json:"recipient"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Type      string     `gorm:"size:20;default:'other';uniqueIndex:idx_notifications_match_dedup,where:type = 'match_found'" json:"type"`
	ItemID    *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_notifications_match_dedup" json:"related_item_id,omitempty"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}
