package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminStatsResponse struct {
	Users  int64 `json:"users"`
	Items  int64 `json:"items"`
	Claims int64 `json:"claims"`
}

type ModerateClaimRequest struct {
	Status string `json:"status"` // approved | rejected
}

type AnnouncementRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ClaimSummary flattens an item/claim pair for the admin claims table.
type ClaimSummary struct {
	ItemID          uuid.UUID `json:"item_id"`
	ItemTitle       string    `json:"item_title"`
	ItemImage       string    `json:"item_image,omitempty"`
	ItemCategory    string    `json:"item_category"`
	ClaimID         uuid.UUID `json:"claim_id"`
	ClaimantName    string    `json:"claimant_name"`
	ClaimantContact string    `json:"claimant_contact"`
	ProofAnswer     string    `json:"proof_answer"`
	ProofImage      string    `json:"proof_image,omitempty"`
	Status          string    `json:"status"`
	Date            time.Time `json:"date"`
}

// ItemReportRow is one row of the admin items export.
type ItemReportRow struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	ItemCategory string    `json:"item_category"`
	Location     string    `json:"location"`
	Reporter     string    `json:"reporter"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

type RecentActivityEntry struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	EntityName string    `json:"entity_name"`
	User       string    `json:"user"`
	Status     string    `json:"status"`
	Date       time.Time `json:"date"`
}

type DistributionSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Fill  string `json:"fill"`
}

type DailyTrend struct {
	Date  string `json:"date"`
	Lost  int64  `json:"lost"`
	Found int64  `json:"found"`
}

type AnalyticsResponse struct {
	Distribution []DistributionSlice `json:"distribution"`
	Trends       []DailyTrend        `json:"trends"`
}
