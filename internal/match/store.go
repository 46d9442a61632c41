package match

import (
	"context"
	"errors"
	"strings"

	"github.com/campusfind/campusfind-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store backs the engine's collaborator interfaces with PostgreSQL.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindCandidates(ctx context.Context, category string, words []string) ([]models.Item, error) {
	if len(words) == 0 {
		return nil, nil
	}

	// Any shared word triggers a candidate. Recall-biased on purpose: humans
	// review the notifications before acting.
	cond := s.db.Where("title ILIKE ?", likePattern(words[0]))
	for _, w := range words[1:] {
		cond = cond.Or("title ILIKE ?", likePattern(w))
	}

	var items []models.Item
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Where(cond).
		Find(&items).Error
	return items, err
}

func (s *Store) FindAll(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (s *Store) Exists(ctx context.Context, recipient string, itemID uuid.UUID, notifType string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient = ? AND item_id = ? AND type = ?", recipient, itemID, notifType).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) Create(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyNotified
		}
		return err
	}
	return nil
}

func (s *Store) DisplayName(ctx context.Context, email string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.FullName, nil
}

// likePattern escapes LIKE metacharacters so a word is matched literally as
// a substring.
func likePattern(word string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(word)
	return "%" + escaped + "%"
}
