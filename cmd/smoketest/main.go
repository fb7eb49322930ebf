// Smoketest drives a full engine session against a real cartridge: load,
// timeline mutation, unlock propagation, and a case file placement. It fails
// fast so it can gate deploys of new cartridges.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/myrjola/gumshoe/internal/config"
	"github.com/myrjola/gumshoe/internal/errors"
	"github.com/myrjola/gumshoe/internal/game"
	"github.com/myrjola/gumshoe/internal/images"
	"github.com/myrjola/gumshoe/internal/logging"
)

// declineGenerator keeps the smoketest offline: every generation is declined,
// which must surface as an errored card rather than a hang.
type declineGenerator struct{}

func (declineGenerator) Generate(_ context.Context, _ string, _ images.Treatment) (images.Result, error) {
	return images.Result{OK: false}, nil
}

func run(ctx context.Context, session *game.Session) error {
	if err := session.Start(ctx); err != nil {
		return errors.Wrap(err, "start session")
	}

	store := session.Store()
	objects := store.Objects()
	if len(objects) == 0 {
		return errors.New("cartridge has no objects")
	}

	first := objects[0]
	before := store.TimeSpent()
	store.AddToTimeline(first.ID)
	store.ApplyUnlocks(first.ID)
	if got, ok := store.Object(first.ID); !ok || !got.HasBeenUnlocked {
		return errors.New("object did not unlock", slog.String("objectID", first.ID))
	}

	// Removing and re-adding must not charge twice.
	afterAdd := store.TimeSpent()
	store.RemoveFromTimeline(first.ID)
	store.AddToTimeline(first.ID)
	if store.TimeSpent() != afterAdd {
		return errors.New("re-add charged time",
			slog.Int("before", before), slog.Int("after", store.TimeSpent()))
	}

	if first.ImagePrompt != "" {
		session.RequestCardImage(ctx, first.ID)
		deadline := time.Now().Add(5 * time.Second)
		for session.Images().IsLoading(first.ID) || session.Images().PendingCount() > 0 {
			if time.Now().After(deadline) {
				return errors.New("image queue did not settle")
			}
			time.Sleep(50 * time.Millisecond)
		}
		if _, ok := session.Images().URL(first.ID); !ok && !session.Images().HasFailed(first.ID) {
			return errors.New("declined image neither resolved nor marked as failed",
				slog.String("cardID", first.ID))
		}
	}

	caseFile := session.CaseFile()
	if unplaced := caseFile.UnplacedClues(); len(unplaced) > 0 {
		caseFile.SelectClue(unplaced[0].ID)
	}

	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logger.LogAttrs(ctx, slog.LevelDebug, "no .env file", errors.SlogError(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error loading config", errors.SlogError(err))
		os.Exit(1)
	}
	ctx = logging.WithAttrs(ctx, slog.String("cartridge", cfg.CartridgeLocator))

	session, err := game.NewSession(cfg, declineGenerator{}, logger)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating session", errors.SlogError(err))
		os.Exit(1)
	}
	defer func() {
		if err = session.Close(); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "error closing session", errors.SlogError(err))
		}
	}()

	if err = run(ctx, session); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
}
