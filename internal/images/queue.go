package images

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/myrjola/gumshoe/internal/errors"
)

// BlobCache is the persistence collaborator of the queue. Put stores a
// generated blob and returns its locally-valid URL.
type BlobCache interface {
	Put(ctx context.Context, cardID, mimeType string, data []byte) (string, error)
	URLs(ctx context.Context) (map[string]string, error)
}

// Request is a pending image generation, deduplicated by CardID.
type Request struct {
	CardID    string
	Prompt    string
	Treatment Treatment
}

// Queue drains image generation requests in fixed-size concurrent batches.
//
// Two safeguards cooperate to guarantee at most one in-flight attempt per
// request: the isProcessing flag stops a second Process invocation, and each
// batch is removed from the queue before it is dispatched, so a re-entrant
// loop iteration never sees claimed work. Every failed card is marked as
// errored so that UI loaders waiting on an image never hang.
type Queue struct {
	mu           sync.Mutex
	logger       *slog.Logger
	generator    Generator
	cache        BlobCache
	concurrency  int
	batchDelay   time.Duration
	pending      []Request
	loading      map[string]bool
	errored      map[string]bool
	urls         map[string]string
	isProcessing bool
}

func NewQueue(generator Generator, cache BlobCache, logger *slog.Logger, concurrency int, batchDelay time.Duration) *Queue {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Queue{
		logger:      logger.With("source", "images.Queue"),
		generator:   generator,
		cache:       cache,
		concurrency: concurrency,
		batchDelay:  batchDelay,
		pending:     []Request{},
		loading:     map[string]bool{},
		errored:     map[string]bool{},
		urls:        map[string]string{},
	}
}

// Hydrate publishes URLs for every previously cached blob. Cards that already
// have a URL in memory are left alone to avoid visual flicker from URL churn.
func (q *Queue) Hydrate(ctx context.Context) error {
	urls, err := q.cache.URLs(ctx)
	if err != nil {
		return errors.Wrap(err, "hydrate image urls")
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for cardID, url := range urls {
		if _, ok := q.urls[cardID]; !ok {
			q.urls[cardID] = url
		}
	}
	return nil
}

// Enqueue admits a request unless the card is already queued, already
// resolved, or currently in flight. Reports whether the request was admitted.
func (q *Queue) Enqueue(request Request) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.urls[request.CardID]; ok {
		return false
	}
	if q.loading[request.CardID] {
		return false
	}
	for _, pending := range q.pending {
		if pending.CardID == request.CardID {
			return false
		}
	}

	q.pending = append(q.pending, request)
	return true
}

// Process drains the queue in batches of up to the configured concurrency,
// pausing the batch delay between batches. A no-op when the queue is empty or
// another Process call is running. All requests of a batch settle, success or
// failure, before the next batch starts.
func (q *Queue) Process(ctx context.Context) {
	q.mu.Lock()
	if q.isProcessing || len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	q.isProcessing = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.isProcessing = false
		q.mu.Unlock()
	}()

	for {
		// Claim the batch before dispatching it.
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		size := q.concurrency
		if size > len(q.pending) {
			size = len(q.pending)
		}
		batch := make([]Request, size)
		copy(batch, q.pending[:size])
		q.pending = q.pending[size:]
		for _, request := range batch {
			q.loading[request.CardID] = true
		}
		q.mu.Unlock()

		var wg sync.WaitGroup
		for _, request := range batch {
			wg.Add(1)
			go func(request Request) {
				defer wg.Done()
				q.generate(ctx, request)
			}(request)
		}
		wg.Wait()

		// Re-read the queue: requests admitted while the batch was in flight
		// are picked up on the next iteration.
		q.mu.Lock()
		remaining := len(q.pending)
		q.mu.Unlock()
		if remaining == 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(q.batchDelay):
		}
	}
}

// generate runs a single request to completion. The loading flag is cleared
// in all outcomes.
func (q *Queue) generate(ctx context.Context, request Request) {
	defer func() {
		q.mu.Lock()
		delete(q.loading, request.CardID)
		q.mu.Unlock()
	}()

	result, err := q.generator.Generate(ctx, request.Prompt, request.Treatment)
	if err != nil || !result.OK {
		if err != nil {
			q.logger.Warn("image generation failed",
				slog.String("cardID", request.CardID), errors.SlogError(err))
		} else {
			q.logger.Info("image generation declined", slog.String("cardID", request.CardID))
		}
		q.markErrored(request.CardID)
		return
	}

	url, err := q.cache.Put(ctx, request.CardID, result.MIMEType, result.Data)
	if err != nil {
		q.logger.Warn("image cache write failed",
			slog.String("cardID", request.CardID), errors.SlogError(err))
		q.markErrored(request.CardID)
		return
	}

	q.mu.Lock()
	q.urls[request.CardID] = url
	delete(q.errored, request.CardID)
	q.mu.Unlock()
}

func (q *Queue) markErrored(cardID string) {
	q.mu.Lock()
	q.errored[cardID] = true
	q.mu.Unlock()
}

// URL returns the published URL for a card.
func (q *Queue) URL(cardID string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	url, ok := q.urls[cardID]
	return url, ok
}

// IsLoading reports whether the card's request is in flight.
func (q *Queue) IsLoading(cardID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading[cardID]
}

// HasFailed reports whether the card's most recent generation attempt failed.
func (q *Queue) HasFailed(cardID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.errored[cardID]
}

// PendingCount returns the number of unclaimed requests.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// IsProcessing reports whether a Process call is currently draining the queue.
func (q *Queue) IsProcessing() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.isProcessing
}
