package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/campusfind/campusfind-backend/internal/dto"
	"github.com/campusfind/campusfind-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrClaimNotFound      = errors.New("claim not found")
	ErrInvalidClaimStatus = errors.New("status must be approved or rejected")
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// logAction writes an audit trail entry. Audit failures are logged but never
// fail the action they describe.
func (s *AdminService) logAction(adminName, action, targetID, details string) {
	entry := models.AuditLog{
		ID:        uuid.New(),
		AdminName: adminName,
		Action:    action,
		TargetID:  targetID,
		Details:   details,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to create audit log", "action", action, "error", err)
	}
}

func (s *AdminService) Stats() (*dto.AdminStatsResponse, error) {
	var stats dto.AdminStatsResponse
	if err := s.db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).Count(&stats.Items).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).Where("resolved = true").Count(&stats.Claims).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *AdminService) DeleteUser(userID uuid.UUID, adminName string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
		return tx.Delete(&user).Error
	})
	if err != nil {
		return err
	}

	s.logAction(adminName, "DELETE_USER", userID.String(), fmt.Sprintf("Deleted user %s", user.FullName))
	return nil
}

// DeleteItem removes an item and its claims. Notifications referencing the
// item are left in place: the reference is weak by design.
func (s *AdminService) DeleteItem(itemID uuid.UUID, adminName string) error {
	var item models.Item
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		return ErrItemNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tx.Where("item_id = ?", itemID).Delete(&models.Claim{})
		return tx.Delete(&item).Error
	})
	if err != nil {
		return err
	}

	s.logAction(adminName, "DELETE_ITEM", itemID.String(), fmt.Sprintf("Deleted item %s", item.Title))
	return nil
}

func (s *AdminService) RecentActivity() ([]dto.RecentActivityEntry, error) {
	var items []models.Item
	if err := s.db.Order("created_at DESC").Limit(5).Find(&items).Error; err != nil {
		return nil, err
	}

	entries := make([]dto.RecentActivityEntry, len(items))
	for i, it := range items {
		entries[i] = dto.RecentActivityEntry{
			ID:         it.ID,
			Type:       "item_reported",
			EntityName: it.Title,
			User:       it.PostedBy,
			Status:     it.Category,
			Date:       it.CreatedAt,
		}
	}
	return entries, nil
}

func (s *AdminService) ItemsReport() ([]dto.ItemReportRow, error) {
	var items []models.Item
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	rows := make([]dto.ItemReportRow, len(items))
	for i, it := range items {
		reporter := it.PostedBy
		if reporter == "" {
			reporter = "Anonymous"
		}
		status := "Open"
		if it.Resolved {
			status = "Resolved"
		}
		date := it.CreatedAt
		if it.Date != nil {
			date = *it.Date
		}
		rows[i] = dto.ItemReportRow{
			ID:           it.ID,
			Title:        it.Title,
			Category:     it.Category,
			ItemCategory: it.ItemCategory,
			Location:     it.Location,
			Reporter:     reporter,
			Status:       status,
			Date:         date,
		}
	}
	return rows, nil
}

func (s *AdminService) ListClaims() ([]dto.ClaimSummary, error) {
	var claims []models.Claim
	if err := s.db.Order("created_at DESC").Find(&claims).Error; err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return []dto.ClaimSummary{}, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(claims))
	for _, c := range claims {
		itemIDs = append(itemIDs, c.ItemID)
	}
	var items []models.Item
	if err := s.db.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	summaries := make([]dto.ClaimSummary, 0, len(claims))
	for _, c := range claims {
		item, ok := byID[c.ItemID]
		if !ok {
			continue
		}
		summaries = append(summaries, dto.ClaimSummary{
			ItemID:          item.ID,
			ItemTitle:       item.Title,
			ItemImage:       item.ImageURL,
			ItemCategory:    item.Category,
			ClaimID:         c.ID,
			ClaimantName:    c.ClaimantName,
			ClaimantContact: c.ClaimantContact,
			ProofAnswer:     c.ProofAnswer,
			ProofImage:      c.ProofImage,
			Status:          c.Status,
			Date:            c.CreatedAt,
		})
	}
	return summaries, nil
}

// ModerateClaim approves or rejects a claim. Approval marks the parent item
// resolved; sibling pending claims are deliberately left untouched.
func (s *AdminService) ModerateClaim(itemID, claimID uuid.UUID, status, adminName string) error {
	if status != models.ClaimApproved && status != models.ClaimRejected {
		return ErrInvalidClaimStatus
	}

	var item models.Item
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		return ErrItemNotFound
	}

	var claim models.Claim
	if err := s.db.First(&claim, "id = ? AND item_id = ?", claimID, itemID).Error; err != nil {
		return ErrClaimNotFound
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&claim).Update("status", status).Error; err != nil {
			return err
		}
		if status == models.ClaimApproved {
			return tx.Model(&item).Update("resolved", true).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	action := "REJECT_CLAIM"
	if status == models.ClaimApproved {
		action = "APPROVE_CLAIM"
	}
	s.logAction(adminName, action, claimID.String(),
		fmt.Sprintf("Claim by %s for %s", claim.ClaimantName, item.Title))

	s.notifyClaimant(&item, &claim, status)
	return nil
}

func (s *AdminService) notifyClaimant(item *models.Item, claim *models.Claim, status string) {
	if !strings.Contains(claim.ClaimantContact, "@") {
		return
	}
	itemID := item.ID
	notification := models.Notification{
		Recipient: claim.ClaimantContact,
		Message:   fmt.Sprintf("Your claim on %q was %s", item.Title, status),
		Type:      models.NotificationClaimUpdate,
		ItemID:    &itemID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		slog.Error("failed to create claim status notification", "claim_id", claim.ID, "error", err)
	}
}

func (s *AdminService) CreateAnnouncement(req *dto.AnnouncementRequest) (*models.Announcement, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("message is required")
	}
	announcementType := req.Type
	if announcementType == "" {
		announcementType = "info"
	}

	announcement := models.Announcement{
		ID:      uuid.New(),
		Message: req.Message,
		Type:    announcementType,
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// ActiveAnnouncement returns the latest active announcement, or nil.
func (s *AdminService) ActiveAnnouncement() (*models.Announcement, error) {
	var announcement models.Announcement
	err := s.db.Where("is_active = true").Order("created_at DESC").First(&announcement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (s *AdminService) Analytics() (*dto.AnalyticsResponse, error) {
	var lost, found, resolved int64
	if err := s.db.Model(&models.Item{}).Where("category = ?", models.CategoryLost).Count(&lost).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).Where("category = ?", models.CategoryFound).Count(&found).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).Where("resolved = true").Count(&resolved).Error; err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)
	var trends []dto.DailyTrend
	query := `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS date,
		       COUNT(*) FILTER (WHERE category = 'lost')  AS lost,
		       COUNT(*) FILTER (WHERE category = 'found') AS found
		FROM items
		WHERE created_at >= ?
		GROUP BY 1
		ORDER BY 1
	`
	if err := s.db.Raw(query, since).Scan(&trends).Error; err != nil {
		return nil, err
	}

	return &dto.AnalyticsResponse{
		Distribution: []dto.DistributionSlice{
			{Name: "Lost Items", Value: lost, Fill: "#EF4444"},
			{Name: "Found Items", Value: found, Fill: "#22C55E"},
			{Name: "Claimed/Resolved", Value: resolved, Fill: "#3B82F6"},
		},
		Trends: trends,
	}, nil
}

func (s *AdminService) SubmitFeedback(req *dto.FeedbackRequest) (*models.Feedback, error) {
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("subject and message are required")
	}

	feedback := models.Feedback{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "open",
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (s *AdminService) ListFeedback() ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.Order("created_at DESC").Find(&feedback).Error
	return feedback, err
}

func (s *AdminService) ResolveFeedback(id uuid.UUID, adminName string) error {
	result := s.db.Model(&models.Feedback{}).Where("id = ?", id).Update("status", "resolved")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("feedback not found")
	}
	s.logAction(adminName, "RESOLVE_FEEDBACK", id.String(), "Marked feedback as resolved")
	return nil
}

func (s *AdminService) AuditLogs() ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.db.Order("created_at DESC").Limit(50).Find(&logs).Error
	return logs, err
}

// ClearAuditLogs wipes the trail and records the wipe as its first entry.
func (s *AdminService) ClearAuditLogs(adminName string) error {
	if err := s.db.Where("1 = 1").Delete(&models.AuditLog{}).Error; err != nil {
		return err
	}
	s.logAction(adminName, "SYSTEM_RESET", "all", "Cleared all audit logs")
	return nil
}
