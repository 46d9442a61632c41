package match

import (
	"context"
	"log/slog"
	"sync"

	"github.com/campusfind/campusfind-backend/internal/models"
)

// Matcher is the engine surface the worker needs.
type Matcher interface {
	FindAndNotify(ctx context.Context, item *models.Item) (int, error)
}

// Worker runs matching off the request path. Report creation enqueues the
// persisted item and returns; a single background goroutine does the
// searching, notification writes, and email sends, logging its own failures.
type Worker struct {
	matcher Matcher
	queue   chan models.Item
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewWorker(matcher Matcher, queueSize int) *Worker {
	return &Worker{
		matcher: matcher,
		queue:   make(chan models.Item, queueSize),
		done:    make(chan struct{}),
	}
}

func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
}

// Enqueue hands an item to the worker without blocking the caller. If the
// queue is full the item is dropped; the batch sweep picks it up later.
func (w *Worker) Enqueue(item models.Item) {
	select {
	case w.queue <- item:
	default:
		slog.Warn("match queue full, skipping item", "item_id", item.ID, "title", item.Title)
	}
}

// Stop drains queued items and waits for the worker goroutine to exit.
func (w *Worker) Stop() {
	close(w.done)
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()
	for {
		select {
		case item := <-w.queue:
			w.process(item)
		case <-w.done:
			for {
				select {
				case item := <-w.queue:
					w.process(item)
				default:
					return
				}
			}
		}
	}
}

func (w *Worker) process(item models.Item) {
	count, err := w.matcher.FindAndNotify(context.Background(), &item)
	if err != nil {
		slog.Error("match run failed", "item_id", item.ID, "error", err)
		return
	}
	if count > 0 {
		slog.Info("match notifications created", "item_id", item.ID, "count", count)
	}
}
