package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/campusfind/campusfind-backend/internal/models"
	"github.com/google/uuid"
)

type countingMatcher struct {
	mu    sync.Mutex
	seen  []uuid.UUID
	block chan struct{}
}

func (m *countingMatcher) FindAndNotify(_ context.Context, item *models.Item) (int, error) {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, item.ID)
	return 0, nil
}

func (m *countingMatcher) seenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

func TestWorkerProcessesEnqueuedItems(t *testing.T) {
	matcher := &countingMatcher{}
	worker := NewWorker(matcher, 8)
	worker.Start()

	for i := 0; i < 5; i++ {
		worker.Enqueue(models.Item{ID: uuid.New(), Title: "test item"})
	}
	worker.Stop()

	if matcher.seenCount() != 5 {
		t.Errorf("expected 5 items processed, got %d", matcher.seenCount())
	}
}

func TestWorkerStopDrainsQueue(t *testing.T) {
	matcher := &countingMatcher{}
	worker := NewWorker(matcher, 8)

	// Enqueue before the goroutine starts so everything is queued.
	for i := 0; i < 3; i++ {
		worker.Enqueue(models.Item{ID: uuid.New(), Title: "queued"})
	}
	worker.Start()
	worker.Stop()

	if matcher.seenCount() != 3 {
		t.Errorf("Stop must drain the queue, processed %d of 3", matcher.seenCount())
	}
}

func TestWorkerEnqueueDropsWhenFull(t *testing.T) {
	matcher := &countingMatcher{block: make(chan struct{})}
	worker := NewWorker(matcher, 1)
	worker.Start()

	// First item parks in the blocked matcher, second fills the queue,
	// third must be dropped without blocking the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 3; i++ {
			worker.Enqueue(models.Item{ID: uuid.New(), Title: "overflow"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	close(matcher.block)
	worker.Stop()

	if matcher.seenCount() > 2 {
		t.Errorf("expected at most 2 items processed after a drop, got %d", matcher.seenCount())
	}
}
