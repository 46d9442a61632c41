package models

import (
	"time"

	"github.com/google/uuid"
)

// Item categories. Matching only ever pairs opposite categories, and the
// category is immutable after creation.
const (
	CategoryLost  = "lost"
	CategoryFound = "found"
)

// Item is a lost-or-found report.
type Item struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Category     string     `gorm:"size:10;not null;index" json:"category"`
	ItemCategory string     `gorm:"size:50;default:'Others'" json:"item_category"`
	Location     string     `gorm:"size:255" json:"location"`
	ContactInfo  string     `gorm:"size:255" json:"contact_info"`
	ImageURL     string     `gorm:"size:500" json:"item_image,omitempty"`
	PostedBy     string     `gorm:"size:255;index" json:"posted_by"`
	Resolved     bool       `gorm:"default:false" json:"resolved"`
	Date         *time.Time `json:"date,omitempty"`
	Claims       []Claim    `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"claims,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// OppositeCategory returns the category matching searches against.
func OppositeCategory(category string) string {
	if category == CategoryLost {
		return CategoryFound
	}
	return CategoryLost
}

// Claim statuses.
const (
	ClaimPending  = "pending"
	ClaimApproved = "approved"
	ClaimRejected = "rejected"
)

// Claim is a user's assertion of ownership (or discovery) against an item.
// Claims live and die with their parent item.
type Claim struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	ClaimantName    string    `gorm:"size:255" json:"claimant_name"`
	ClaimantContact string    `gorm:"size:255;index" json:"claimant_contact"`
	ProofAnswer     string    `gorm:"type:text" json:"proof_answer"`
	ProofImage      string    `gorm:"size:500" json:"proof_image,omitempty"`
	Status          string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
