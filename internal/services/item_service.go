package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campusfind/campusfind-backend/internal/dto"
	"github.com/campusfind/campusfind-backend/internal/match"
	"github.com/campusfind/campusfind-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidCategory = errors.New("category must be lost or found")
)

// MatchDispatcher hands a freshly persisted item to the background matcher.
type MatchDispatcher interface {
	Enqueue(item models.Item)
}

type ItemService struct {
	db         *gorm.DB
	dispatcher MatchDispatcher
	mailer     match.Mailer
}

func NewItemService(db *gorm.DB, dispatcher MatchDispatcher, mailer match.Mailer) *ItemService {
	return &ItemService{db: db, dispatcher: dispatcher, mailer: mailer}
}

// CreateItem persists the report and queues it for matching. The caller gets
// its response as soon as the row exists; matching, notification writes, and
// email sends all happen on the worker.
func (s *ItemService) CreateItem(req *dto.CreateItemRequest) (*models.Item, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if req.Category != models.CategoryLost && req.Category != models.CategoryFound {
		return nil, ErrInvalidCategory
	}

	itemCategory := req.ItemCategory
	if itemCategory == "" {
		itemCategory = "Others"
	}

	item := models.Item{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		ItemCategory: itemCategory,
		Location:     req.Location,
		ContactInfo:  req.ContactInfo,
		ImageURL:     req.ImageURL,
		PostedBy:     strings.ToLower(strings.TrimSpace(req.PostedBy)),
		Date:         req.Date,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.dispatcher.Enqueue(item)
	return &item, nil
}

func (s *ItemService) ListItems(category, itemCategory string) ([]models.Item, error) {
	query := s.db.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if itemCategory != "" {
		query = query.Where("item_category = ?", itemCategory)
	}

	var items []models.Item
	err := query.Find(&items).Error
	return items, err
}

func (s *ItemService) GetItem(itemID uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := s.db.Preload("Claims").First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SubmitClaim appends a claim to an item and alerts the reporter with an
// inbox notification and a best-effort email. Claims themselves are never
// deduplicated; one claimant may follow up with better proof.
func (s *ItemService) SubmitClaim(itemID uuid.UUID, req *dto.ClaimRequest) (*models.Claim, error) {
	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	claim := models.Claim{
		ID:              uuid.New(),
		ItemID:          item.ID,
		ClaimantName:    req.ClaimantName,
		ClaimantContact: req.ClaimantContact,
		ProofAnswer:     req.ProofAnswer,
		ProofImage:      req.ProofImage,
		Status:          models.ClaimPending,
	}

	if err := s.db.Create(&claim).Error; err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	s.notifyReporter(item, &claim)
	return &claim, nil
}

// notifyReporter is best effort end to end: the claim is already persisted,
// and an unreachable reporter must not fail the claimant's request.
func (s *ItemService) notifyReporter(item *models.Item, claim *models.Claim) {
	if !strings.Contains(item.PostedBy, "@") {
		return
	}

	itemID := item.ID
	notification := models.Notification{
		Recipient: item.PostedBy,
		Message:   fmt.Sprintf("A new claim has been submitted for your item: %q", item.Title),
		Type:      models.NotificationClaimUpdate,
		ItemID:    &itemID,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		slog.Error("failed to create claim notification", "item_id", item.ID, "error", err)
	}

	var subject string
	if item.Category == models.CategoryLost {
		subject = fmt.Sprintf("User found your lost item: %s", item.Title)
	} else {
		subject = fmt.Sprintf("Owner claim this item: %s", item.Title)
	}

	body := fmt.Sprintf(`Hello,

A new claim has been submitted for your item: %q.

Claimant Details:
Name: %s
Contact: %s

Proof/Description provided:
%s

Please log in to your dashboard to view full details and approve/reject this claim.

Regards,
Campus Find Team
`, item.Title, claim.ClaimantName, claim.ClaimantContact, claim.ProofAnswer)

	if err := s.mailer.Send(item.PostedBy, subject, body); err != nil {
		slog.Error("failed to send claim email", "recipient", item.PostedBy, "error", err)
	}
}

func (s *ItemService) UserStats(email string) (*dto.UserStatsResponse, error) {
	var stats dto.UserStatsResponse

	if err := s.db.Model(&models.Item{}).
		Where("posted_by = ? AND category = ?", email, models.CategoryLost).
		Count(&stats.LostCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).
		Where("posted_by = ? AND category = ?", email, models.CategoryFound).
		Count(&stats.FoundCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Item{}).
		Where("posted_by = ? AND resolved = true", email).
		Count(&stats.ResolvedCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// UserActivity merges the items a user reported with the items they claimed,
// newest first, capped at ten entries.
func (s *ItemService) UserActivity(email string) ([]dto.ActivityEntry, error) {
	var reported []models.Item
	if err := s.db.Where("posted_by = ?", email).Find(&reported).Error; err != nil {
		return nil, err
	}

	var claims []models.Claim
	if err := s.db.Where("claimant_contact = ?", email).Find(&claims).Error; err != nil {
		return nil, err
	}

	claimedItems := make(map[uuid.UUID]models.Item)
	if len(claims) > 0 {
		itemIDs := make([]uuid.UUID, 0, len(claims))
		for _, c := range claims {
			itemIDs = append(itemIDs, c.ItemID)
		}
		var items []models.Item
		if err := s.db.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return nil, err
		}
		for _, it := range items {
			claimedItems[it.ID] = it
		}
	}

	entries := make([]dto.ActivityEntry, 0, len(reported)+len(claims))
	for _, it := range reported {
		status := "Open"
		if it.Resolved {
			status = "Resolved"
		}
		entries = append(entries, dto.ActivityEntry{
			ID:       it.ID,
			Type:     "reported",
			Title:    it.Title,
			Status:   status,
			Date:     it.CreatedAt,
			Category: it.Category,
		})
	}
	for _, c := range claims {
		item, ok := claimedItems[c.ItemID]
		if !ok {
			continue
		}
		entries = append(entries, dto.ActivityEntry{
			ID:       item.ID,
			Type:     "claimed",
			Title:    item.Title,
			Status:   c.Status,
			Date:     c.CreatedAt,
			Category: item.Category,
		})
	}

	return recentActivity(entries, 10), nil
}
