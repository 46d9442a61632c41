package match

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/campusfind/campusfind-backend/internal/models"
	"github.com/google/uuid"
)

type fakeItems struct {
	mu    sync.Mutex
	items []models.Item
}

func (f *fakeItems) add(item models.Item) models.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items = append(f.items, item)
	return item
}

func (f *fakeItems) FindCandidates(_ context.Context, category string, words []string) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Item
	for _, item := range f.items {
		if item.Category != category {
			continue
		}
		title := strings.ToLower(item.Title)
		for _, w := range words {
			if strings.Contains(title, strings.ToLower(w)) {
				out = append(out, item)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeItems) FindAll(_ context.Context) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Item(nil), f.items...), nil
}

type fakeNotifications struct {
	mu        sync.Mutex
	records   []*models.Notification
	createErr error
	existsErr error
	// raceOnce makes the next Create fail with ErrAlreadyNotified even
	// though Exists reported no record, simulating a concurrent writer.
	raceOnce bool
}

func (f *fakeNotifications) key(recipient string, itemID uuid.UUID, notifType string) string {
	return recipient + "|" + itemID.String() + "|" + notifType
}

func (f *fakeNotifications) Exists(_ context.Context, recipient string, itemID uuid.UUID, notifType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	want := f.key(recipient, itemID, notifType)
	for _, n := range f.records {
		if f.key(n.Recipient, *n.ItemID, n.Type) == want {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if f.raceOnce {
		f.raceOnce = false
		return ErrAlreadyNotified
	}
	want := f.key(n.Recipient, *n.ItemID, n.Type)
	for _, existing := range f.records {
		if f.key(existing.Recipient, *existing.ItemID, existing.Type) == want {
			return ErrAlreadyNotified
		}
	}
	f.records = append(f.records, n)
	return nil
}

func (f *fakeNotifications) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeNotifications) forRecipient(recipient string) []*models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.records {
		if n.Recipient == recipient {
			out = append(out, n)
		}
	}
	return out
}

type fakeDirectory struct {
	names map[string]string
	err   error
}

func (f *fakeDirectory) DisplayName(_ context.Context, email string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.names[email], nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestEngine() (*Engine, *fakeItems, *fakeNotifications, *fakeDirectory, *fakeMailer) {
	items := &fakeItems{}
	notifications := &fakeNotifications{}
	directory := &fakeDirectory{names: map[string]string{}}
	mailer := &fakeMailer{}
	return NewEngine(items, notifications, directory, mailer), items, notifications, directory, mailer
}

func TestFindAndNotifyCreatesBothDirections(t *testing.T) {
	engine, items, notifications, _, mailer := newTestEngine()

	found := items.add(models.Item{Title: "Blue Umbrella", Category: models.CategoryFound, PostedBy: "alice@campus.edu"})
	lost := items.add(models.Item{Title: "Blue Umbrella", Category: models.CategoryLost, PostedBy: "bob@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 notifications created, got %d", count)
	}

	aliceNotifs := notifications.forRecipient("alice@campus.edu")
	if len(aliceNotifs) != 1 {
		t.Fatalf("expected 1 notification for alice, got %d", len(aliceNotifs))
	}
	if *aliceNotifs[0].ItemID != lost.ID {
		t.Errorf("alice's notification should reference the lost item")
	}
	if !strings.Contains(aliceNotifs[0].Message, "LOST item similar to your found item") {
		t.Errorf("unexpected message for alice: %q", aliceNotifs[0].Message)
	}
	if aliceNotifs[0].Type != models.NotificationMatchFound {
		t.Errorf("expected type %q, got %q", models.NotificationMatchFound, aliceNotifs[0].Type)
	}

	bobNotifs := notifications.forRecipient("bob@campus.edu")
	if len(bobNotifs) != 1 {
		t.Fatalf("expected 1 notification for bob, got %d", len(bobNotifs))
	}
	if *bobNotifs[0].ItemID != found.ID {
		t.Errorf("bob's notification should reference the found item")
	}
	if !strings.Contains(bobNotifs[0].Message, "might match your lost item") {
		t.Errorf("unexpected message for bob: %q", bobNotifs[0].Message)
	}

	if mailer.sentCount() != 2 {
		t.Errorf("expected 2 emails sent, got %d", mailer.sentCount())
	}
}

func TestFindAndNotifyIsIdempotent(t *testing.T) {
	engine, items, notifications, _, mailer := newTestEngine()

	items.add(models.Item{Title: "Black Wallet", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	lost := items.add(models.Item{Title: "Black Wallet leather", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	if count, err := engine.FindAndNotify(context.Background(), &lost); err != nil || count != 2 {
		t.Fatalf("first run: count=%d err=%v", count, err)
	}

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if count != 0 {
		t.Errorf("second run should create nothing, got %d", count)
	}
	if notifications.count() != 2 {
		t.Errorf("expected 2 total records, got %d", notifications.count())
	}
	if mailer.sentCount() != 2 {
		t.Errorf("duplicate run must not re-send email, sent %d", mailer.sentCount())
	}
}

func TestFindAndNotifyRepairsMissingDirection(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()

	found := items.add(models.Item{Title: "Red Scarf", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	lost := items.add(models.Item{Title: "Red Scarf", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	// One half already exists, as if an earlier run crashed midway.
	lostID := lost.ID
	if err := notifications.Create(context.Background(), &models.Notification{
		Recipient: "finder@campus.edu",
		Type:      models.NotificationMatchFound,
		ItemID:    &lostID,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the missing half created, got %d", count)
	}
	ownerNotifs := notifications.forRecipient("owner@campus.edu")
	if len(ownerNotifs) != 1 || *ownerNotifs[0].ItemID != found.ID {
		t.Errorf("expected owner notified about the found item")
	}
}

func TestFindAndNotifySkipsSameReporter(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()

	items.add(models.Item{Title: "Silver Keychain", Category: models.CategoryFound, PostedBy: "self@campus.edu"})
	lost := items.add(models.Item{Title: "Silver Keychain", Category: models.CategoryLost, PostedBy: "self@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 0 || notifications.count() != 0 {
		t.Errorf("self-match must not notify, count=%d records=%d", count, notifications.count())
	}
}

func TestFindAndNotifySkipsInvalidReporters(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()

	items.add(models.Item{Title: "Lost Phone", Category: models.CategoryFound, PostedBy: "anonymous"})
	lost := items.add(models.Item{Title: "Lost Phone", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 0 || notifications.count() != 0 {
		t.Errorf("candidate without an email must be skipped, count=%d", count)
	}

	// An item without a reporter email never triggers matching either.
	noReporter := items.add(models.Item{Title: "Lost Phone charger", Category: models.CategoryLost, PostedBy: "anonymous"})
	count, err = engine.FindAndNotify(context.Background(), &noReporter)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 0 {
		t.Errorf("trigger without an email must be a no-op, count=%d", count)
	}
}

func TestFindAndNotifyIgnoresSameCategory(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()

	items.add(models.Item{Title: "Green Bottle", Category: models.CategoryLost, PostedBy: "first@campus.edu"})
	second := items.add(models.Item{Title: "Green Bottle", Category: models.CategoryLost, PostedBy: "second@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &second)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 0 || notifications.count() != 0 {
		t.Errorf("two lost items must never pair, count=%d", count)
	}
}

func TestFindAndNotifyEmptyTitle(t *testing.T) {
	engine, items, _, _, _ := newTestEngine()

	items.add(models.Item{Title: "anything", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	blank := items.add(models.Item{Title: "   ", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &blank)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 0 {
		t.Errorf("whitespace-only title must match nothing, count=%d", count)
	}
}

func TestFindAndNotifyAnyWordMatches(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()

	items.add(models.Item{Title: "black leather wallet", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	lost := items.add(models.Item{Title: "WALLET with cards", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("FindAndNotify: %v", err)
	}
	if count != 2 {
		t.Errorf("single shared word should pair case-insensitively, count=%d records=%d", count, notifications.count())
	}
}

func TestFindAndNotifyLosesCreateRace(t *testing.T) {
	engine, items, notifications, _, mailer := newTestEngine()
	notifications.raceOnce = true

	items.add(models.Item{Title: "Blue Bag", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	lost := items.add(models.Item{Title: "Blue Bag", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("lost race must not be an error: %v", err)
	}
	if count != 1 {
		t.Errorf("only the direction that won should count, got %d", count)
	}
	if mailer.sentCount() != 1 {
		t.Errorf("no email for the raced direction, sent %d", mailer.sentCount())
	}
}

func TestFindAndNotifyPropagatesStorageError(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()
	notifications.createErr = errors.New("connection reset")

	items.add(models.Item{Title: "Gold Ring", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	lost := items.add(models.Item{Title: "Gold Ring", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	if _, err := engine.FindAndNotify(context.Background(), &lost); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}

func TestFindAndNotifyToleratesMailerAndDirectoryFailures(t *testing.T) {
	engine, items, notifications, directory, mailer := newTestEngine()
	directory.err = errors.New("lookup down")
	mailer.err = errors.New("smtp down")

	items.add(models.Item{Title: "Laptop Charger", Category: models.CategoryFound, PostedBy: "finder@campus.edu"})
	lost := items.add(models.Item{Title: "Laptop Charger", Category: models.CategoryLost, PostedBy: "owner@campus.edu"})

	count, err := engine.FindAndNotify(context.Background(), &lost)
	if err != nil {
		t.Fatalf("delivery failures must not fail the run: %v", err)
	}
	if count != 2 || notifications.count() != 2 {
		t.Errorf("notifications persist regardless of email, count=%d records=%d", count, notifications.count())
	}
}

func TestSweepAll(t *testing.T) {
	engine, items, notifications, _, _ := newTestEngine()

	items.add(models.Item{Title: "Blue Umbrella", Category: models.CategoryFound, PostedBy: "alice@campus.edu"})
	items.add(models.Item{Title: "Blue Umbrella", Category: models.CategoryLost, PostedBy: "bob@campus.edu"})

	result, err := engine.SweepAll(context.Background())
	if err != nil {
		t.Fatalf("SweepAll: %v", err)
	}
	if result.ItemsScanned != 2 {
		t.Errorf("expected 2 items scanned, got %d", result.ItemsScanned)
	}
	// Both directions are created by whichever item is processed first;
	// the second item then finds nothing left to do.
	if result.NotificationsGenerated != 2 {
		t.Errorf("expected 2 notifications generated, got %d", result.NotificationsGenerated)
	}
	if notifications.count() != 2 {
		t.Errorf("expected 2 records, got %d", notifications.count())
	}

	again, err := engine.SweepAll(context.Background())
	if err != nil {
		t.Fatalf("second SweepAll: %v", err)
	}
	if again.NotificationsGenerated != 0 {
		t.Errorf("repeat sweep must generate nothing, got %d", again.NotificationsGenerated)
	}
}

func TestMatchEmailBodyFallsBackToThere(t *testing.T) {
	body := matchEmailBody("", "Someone found an item")
	if !strings.Contains(body, "Hello there,") {
		t.Errorf("expected fallback greeting, got %q", body)
	}
	named := matchEmailBody("Alice", "Someone found an item")
	if !strings.Contains(named, "Hello Alice,") {
		t.Errorf("expected personalized greeting, got %q", named)
	}
}
