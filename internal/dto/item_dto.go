package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	ItemCategory string     `json:"item_category"`
	Location     string     `json:"location"`
	ContactInfo  string     `json:"contact_info"`
	ImageURL     string     `json:"item_image"`
	PostedBy     string     `json:"posted_by"`
	Date         *time.Time `json:"date"`
}

type ClaimRequest struct {
	ClaimantName    string `json:"claimant_name"`
	ClaimantContact string `json:"claimant_contact"`
	ProofAnswer     string `json:"proof_answer"`
	ProofImage      string `json:"proof_image"`
}

type UserStatsResponse struct {
	LostCount     int64 `json:"lost_count"`
	FoundCount    int64 `json:"found_count"`
	ResolvedCount int64 `json:"resolved_count"`
}

// ActivityEntry is one row of a user's merged reported/claimed history.
type ActivityEntry struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"` // reported | claimed
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
}
