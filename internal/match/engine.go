package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/campusfind/campusfind-backend/internal/models"
	"github.com/google/uuid"
)

// ErrAlreadyNotified is returned by NotificationStore.Create when the
// (recipient, item, type) dedup key already exists. The engine treats it as
// a benign skip, which absorbs check-then-create races between concurrent
// triggers on the same pair.
var ErrAlreadyNotified = errors.New("notification already exists")

// ItemSource finds match candidates and feeds the batch sweep.
type ItemSource interface {
	// FindCandidates returns items of the given category whose title
	// contains any of the words, case-insensitively.
	FindCandidates(ctx context.Context, category string, words []string) ([]models.Item, error)
	FindAll(ctx context.Context) ([]models.Item, error)
}

// NotificationStore persists match notifications.
type NotificationStore interface {
	Exists(ctx context.Context, recipient string, itemID uuid.UUID, notifType string) (bool, error)
	Create(ctx context.Context, n *models.Notification) error
}

// Directory resolves an email to a display name for message personalization.
// An empty name means no resolvable user; that is never an error for the
// engine.
type Directory interface {
	DisplayName(ctx context.Context, email string) (string, error)
}

// Mailer delivers a message out-of-band. Failures are logged by the engine
// and never affect notification persistence.
type Mailer interface {
	Send(to, subject, body string) error
}

// Engine pairs newly reported items with opposite-category items and makes
// sure both reporters are notified exactly once per pairing.
type Engine struct {
	items         ItemSource
	notifications NotificationStore
	directory     Directory
	mailer        Mailer
}

func NewEngine(items ItemSource, notifications NotificationStore, directory Directory, mailer Mailer) *Engine {
	return &Engine{
		items:         items,
		notifications: notifications,
		directory:     directory,
		mailer:        mailer,
	}
}

// FindAndNotify searches opposite-category items sharing any title word with
// the given item and creates a match_found notification in each direction of
// each eligible pairing, unless one already exists. It returns the number of
// notification records actually created.
//
// Items whose reporter email lacks "@" are excluded both as trigger and as
// candidate: there is nobody to notify. Storage errors propagate; email
// delivery errors do not.
func (e *Engine) FindAndNotify(ctx context.Context, item *models.Item) (int, error) {
	if !validReporter(item.PostedBy) {
		return 0, nil
	}

	words := titleWords(item.Title)
	if len(words) == 0 {
		return 0, nil
	}

	target := models.OppositeCategory(item.Category)
	candidates, err := e.items.FindCandidates(ctx, target, words)
	if err != nil {
		return 0, fmt.Errorf("candidate search for item %s: %w", item.ID, err)
	}

	created := 0
	for i := range candidates {
		candidate := &candidates[i]
		if !validReporter(candidate.PostedBy) || candidate.PostedBy == item.PostedBy {
			continue
		}

		// Each direction is deduplicated independently: a pairing half
		// created by an earlier run never blocks the missing half.
		ok, err := e.notify(ctx, candidate.PostedBy, item)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}

		ok, err = e.notify(ctx, item.PostedBy, candidate)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}

// notify creates a match_found notification telling recipient about the
// referenced item, unless that (recipient, item) pair was already notified.
// Reports whether a record was created.
func (e *Engine) notify(ctx context.Context, recipient string, about *models.Item) (bool, error) {
	exists, err := e.notifications.Exists(ctx, recipient, about.ID, models.NotificationMatchFound)
	if err != nil {
		return false, fmt.Errorf("dedup lookup for %s: %w", recipient, err)
	}
	if exists {
		return false, nil
	}

	message := matchMessage(about)
	itemID := about.ID
	n := &models.Notification{
		Recipient: recipient,
		Message:   message,
		Type:      models.NotificationMatchFound,
		ItemID:    &itemID,
	}
	if err := e.notifications.Create(ctx, n); err != nil {
		if errors.Is(err, ErrAlreadyNotified) {
			// Lost a race against a concurrent trigger on the same pair.
			return false, nil
		}
		return false, fmt.Errorf("create notification for %s: %w", recipient, err)
	}

	e.sendMatchEmail(ctx, recipient, message)
	return true, nil
}

func (e *Engine) sendMatchEmail(ctx context.Context, recipient, message string) {
	name, err := e.directory.DisplayName(ctx, recipient)
	if err != nil {
		slog.Warn("display name lookup failed", "recipient", recipient, "error", err)
		name = ""
	}

	body := matchEmailBody(name, message)
	if err := e.mailer.Send(recipient, matchEmailSubject, body); err != nil {
		slog.Error("failed to send match email", "recipient", recipient, "error", err)
	}
}

// SweepResult reports the outcome of a full retroactive matching pass.
type SweepResult struct {
	ItemsScanned           int `json:"items_scanned"`
	NotificationsGenerated int `json:"notifications_generated"`
}

// SweepAll re-runs FindAndNotify over every stored item, repairing pairings
// missed by the creation-time flow. The first storage error aborts the sweep;
// per-pair idempotence makes a retry from the top safe.
func (e *Engine) SweepAll(ctx context.Context) (SweepResult, error) {
	items, err := e.items.FindAll(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("load items for sweep: %w", err)
	}

	result := SweepResult{ItemsScanned: len(items)}
	for i := range items {
		count, err := e.FindAndNotify(ctx, &items[i])
		result.NotificationsGenerated += count
		if err != nil {
			return result, fmt.Errorf("sweep stopped at item %s: %w", items[i].ID, err)
		}
	}
	return result, nil
}

// validReporter reports whether the reporter identity looks like an email.
// Crude, but it is the load-bearing filter that keeps anonymous and junk
// identities out of matching and messaging.
func validReporter(email string) bool {
	return strings.Contains(email, "@")
}

// titleWords tokenizes a title by whitespace. An empty result means the item
// matches nothing; an empty pattern must never match every candidate.
func titleWords(title string) []string {
	return strings.Fields(title)
}
