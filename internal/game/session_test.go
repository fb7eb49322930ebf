package game_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/myrjola/gumshoe/internal/config"
	"github.com/myrjola/gumshoe/internal/game"
	"github.com/myrjola/gumshoe/internal/images"
	"github.com/myrjola/gumshoe/internal/models"
	"github.com/myrjola/gumshoe/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ string, _ images.Treatment) (images.Result, error) {
	return images.Result{Data: []byte{1}, MIMEType: "image/png", OK: true}, nil
}

const testCartridge = `{
	"metadata": {"title": "The Harbor Case", "version": "1.0"},
	"storyInfo": {"victimId": "victim", "crimeSceneLocationId": "docks"},
	"characters": [
		{"id": "victim", "name": "Frank Ollis", "role": "victim", "statement": "..."},
		{"id": "marla", "name": "Marla Keene", "role": "suspect"}
	],
	"locations": [{"id": "docks", "name": "The Docks"}],
	"objects": [{"id": "o1", "name": "Bloody rope", "timeToAdd": 15, "imagePrompt": "A frayed rope"}],
	"caseFile": {
		"clues": [{"id": "clue1", "eventKey": "murder", "type": "primary", "points": 10}],
		"anchors": [{"id": "anchor1", "primarySlot": {"id": "slot1", "correctEventKey": "murder"}}]
	}
}`

func newTestSession(t *testing.T) *game.Session {
	t.Helper()

	path := filepath.Join(t.TempDir(), "case.json")
	require.NoError(t, os.WriteFile(path, []byte(testCartridge), 0o600))

	cfg := config.Config{
		CartridgeLocator: path,
		SQLiteURL:        ":memory:",
		ImageConcurrency: 2,
		ImageBatchDelay:  time.Millisecond,
	}
	session, err := game.NewSession(cfg, stubGenerator{}, testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, session.Close())
	})
	require.NoError(t, session.Start(context.Background()))
	return session
}

func TestSession_Start(t *testing.T) {
	t.Parallel()
	session := newTestSession(t)

	require.Equal(t, "The Harbor Case", session.Store().Metadata().Title)
	require.Len(t, session.Store().Characters(), 2)
	require.Len(t, session.Store().Evidence(), 1, "victim evidence is seeded")
	require.NotNil(t, session.CaseFile())
	require.False(t, session.CaseFile().IsComplete())
}

func TestSession_StartFailsOnMissingCartridge(t *testing.T) {
	t.Parallel()
	cfg := config.Config{
		CartridgeLocator: filepath.Join(t.TempDir(), "nope.json"),
		SQLiteURL:        ":memory:",
		ImageConcurrency: 1,
		ImageBatchDelay:  time.Millisecond,
	}
	session, err := game.NewSession(cfg, stubGenerator{}, testhelpers.NewLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, session.Close())
	})

	require.Error(t, session.Start(context.Background()))
}

func TestSession_RequestCardImage(t *testing.T) {
	t.Parallel()
	session := newTestSession(t)

	session.RequestCardImage(context.Background(), "o1")
	require.Eventually(t, func() bool {
		_, ok := session.Images().URL("o1")
		return ok
	}, time.Second, 5*time.Millisecond)

	// Unknown cards are skipped entirely.
	session.RequestCardImage(context.Background(), "unknown-card")
	require.Equal(t, 0, session.Images().PendingCount())
	require.False(t, session.Images().HasFailed("unknown-card"))
}

func TestSession_playthrough(t *testing.T) {
	t.Parallel()
	session := newTestSession(t)
	store := session.Store()

	store.AddToTimeline("o1")
	require.Equal(t, 15, store.TimeSpent())

	caseFile := session.CaseFile()
	caseFile.SelectClue("clue1")
	caseFile.PlaceClue("slot1")
	require.Equal(t, 10, caseFile.Score())
	require.True(t, caseFile.IsComplete())

	require.Equal(t, models.RoleSuspect, store.Characters()[1].Role)
}
