// Package game wires the engine together: cartridge loading, the story
// store, the case file puzzle, and the image pipeline, configured from the
// environment.
package game

import (
	"context"
	"log/slog"

	"github.com/myrjola/gumshoe/internal/blobcache"
	"github.com/myrjola/gumshoe/internal/cartridge"
	"github.com/myrjola/gumshoe/internal/casefile"
	"github.com/myrjola/gumshoe/internal/config"
	"github.com/myrjola/gumshoe/internal/errors"
	"github.com/myrjola/gumshoe/internal/images"
	"github.com/myrjola/gumshoe/internal/story"
)

// Session is one investigation: a loaded cartridge with its state machines
// and image pipeline.
type Session struct {
	logger   *slog.Logger
	cfg      config.Config
	store    *story.Store
	caseFile *casefile.Engine
	cache    *blobcache.Cache
	queue    *images.Queue
}

// NewSession opens the image cache and constructs the engine. Start must be
// called before the session is usable.
func NewSession(cfg config.Config, generator images.Generator, logger *slog.Logger) (*Session, error) {
	cache, err := blobcache.New(cfg.SQLiteURL)
	if err != nil {
		return nil, errors.Wrap(err, "open image cache")
	}

	return &Session{
		logger: logger,
		cfg:    cfg,
		store: story.NewStore(logger, story.Options{
			InitialTimeSpent:    cfg.InitialTimeSpent,
			AccusationThreshold: cfg.AccusationThreshold,
			QuestionTimeCost:    cfg.QuestionTimeCost,
			TestimonyTimeCost:   cfg.TestimonyTimeCost,
		}),
		cache: cache,
		queue: images.NewQueue(generator, cache, logger, cfg.ImageConcurrency, cfg.ImageBatchDelay),
	}, nil
}

// Start loads the cartridge, populates the state machines, and hydrates image
// URLs from the cache. Cartridge failure is fatal; the session stays unusable.
func (s *Session) Start(ctx context.Context) error {
	cart, err := cartridge.Load(ctx, s.cfg.CartridgeLocator)
	if err != nil {
		return errors.Wrap(err, "load cartridge")
	}

	s.store.Load(cart)
	s.caseFile = casefile.NewEngine(cart.CaseFile, s.logger)

	if err = s.queue.Hydrate(ctx); err != nil {
		return errors.Wrap(err, "hydrate image cache")
	}
	return nil
}

// Store exposes the story state machine.
func (s *Session) Store() *story.Store {
	return s.store
}

// CaseFile exposes the clue-placement puzzle. Nil before Start.
func (s *Session) CaseFile() *casefile.Engine {
	return s.caseFile
}

// Images exposes the image pipeline.
func (s *Session) Images() *images.Queue {
	return s.queue
}

// RequestCardImage queues generation of a card's image and kicks the
// processor. Cards without a prompt, and cards whose image is already
// resolved or in flight, are skipped.
func (s *Session) RequestCardImage(ctx context.Context, cardID string) {
	prompt, treatment, ok := s.cardPrompt(cardID)
	if !ok || prompt == "" {
		return
	}
	if !s.queue.Enqueue(images.Request{CardID: cardID, Prompt: prompt, Treatment: treatment}) {
		return
	}
	// The queue's reentrancy guard makes a concurrent kick a no-op.
	go s.queue.Process(ctx)
}

func (s *Session) cardPrompt(cardID string) (string, images.Treatment, bool) {
	if object, ok := s.store.Object(cardID); ok {
		return object.ImagePrompt, images.TreatmentMonochrome, true
	}
	if character, ok := s.store.Character(cardID); ok {
		return "Portrait of " + character.Name + ". " + character.Bio, images.TreatmentSelectiveColor, true
	}
	if location, ok := s.store.Location(cardID); ok {
		return location.Name + ". " + location.Description, images.TreatmentMap, true
	}
	return "", images.TreatmentMonochrome, false
}

// Close releases the image cache.
func (s *Session) Close() error {
	if err := s.cache.Close(); err != nil {
		return errors.Wrap(err, "close image cache")
	}
	return nil
}
