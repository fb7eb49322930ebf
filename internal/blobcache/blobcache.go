// Package blobcache persists generated card images in SQLite so that a
// session restart does not re-spend image generation credits. Blobs are keyed
// by card id and addressed through blob:// URLs that the UI resolves via Get.
package blobcache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/gumshoe/internal/errors"
	"github.com/myrjola/gumshoe/internal/random"

	_ "embed"
	_ "github.com/mattn/go-sqlite3" // Enable sqlite3 driver
)

//go:embed init.sql
var initialiseSchemaScript string

var ErrNotFound = errors.NewSentinel("blob not found")

// Cache is a named-blob store with two database connections, one for
// read/write operations and one for read-only operations. This is a best
// practice mentioned in https://github.com/mattn/go-sqlite3/issues/1179#issuecomment-1638083995
type Cache struct {
	readWriteDB *sqlx.DB
	readDB      *sqlx.DB
}

// New opens the cache at the given SQLite file path or ":memory:" for an
// in-memory database.
func New(url string) (*Cache, error) {
	var (
		err         error
		readWriteDB *sqlx.DB
		readDB      *sqlx.DB
	)

	// For in-memory databases, we need shared cache mode so that both
	// connections access the same data. Parallel tests need a different
	// database name per test to avoid sharing data.
	// See https://www.sqlite.org/inmemorydb.html.
	isInMemory := strings.Contains(url, ":memory:")
	inMemoryConfig := ""
	if isInMemory {
		var randomID string
		if randomID, err = random.Letters(20); err != nil {
			return nil, errors.Wrap(err, "generate random ID")
		}
		url = randomID
		inMemoryConfig = "&mode=memory&cache=shared"
	}
	commonConfig := "_journal_mode=wal&_busy_timeout=5000&_synchronous=normal&_foreign_keys=on"

	readWriteConfig := fmt.Sprintf("file:%s?_txlock=immediate&%s%s", url, commonConfig, inMemoryConfig)
	if readWriteDB, err = sqlx.Connect("sqlite3", readWriteConfig); err != nil {
		return nil, errors.Wrap(err, "open read-write database")
	}

	readWriteDB.SetMaxOpenConns(1)
	readWriteDB.SetMaxIdleConns(1)
	readWriteDB.SetConnMaxLifetime(time.Hour)
	readWriteDB.SetConnMaxIdleTime(time.Hour)

	if _, err = readWriteDB.Exec(initialiseSchemaScript); err != nil {
		return nil, errors.Wrap(err, "initialize schema")
	}

	readConfig := fmt.Sprintf("file:%s?mode=ro&_txlock=deferred&_query_only=true&%s%s", url, commonConfig, inMemoryConfig)
	if isInMemory {
		// mode=ro and mode=memory conflict in the URI; query_only already
		// guards the in-memory read connection.
		readConfig = fmt.Sprintf("file:%s?_txlock=deferred&_query_only=true&%s%s", url, commonConfig, inMemoryConfig)
	}
	if readDB, err = sqlx.Connect("sqlite3", readConfig); err != nil {
		return nil, errors.Wrap(err, "open read database")
	}

	maxReadConns := 10
	readDB.SetMaxOpenConns(maxReadConns)
	readDB.SetMaxIdleConns(maxReadConns)
	readDB.SetConnMaxLifetime(time.Hour)
	readDB.SetConnMaxIdleTime(time.Hour)

	return &Cache{
		readWriteDB: readWriteDB,
		readDB:      readDB,
	}, nil
}

// BlobURL is the locally-valid URL for a cached card image.
func BlobURL(cardID string) string {
	return "blob://" + cardID
}

// Put stores or replaces the blob for a card and returns its blob URL.
func (c *Cache) Put(ctx context.Context, cardID, mimeType string, data []byte) (string, error) {
	stmt := `INSERT INTO blobs (card_id, mime_type, data)
VALUES (?, ?, ?)
ON CONFLICT (card_id) DO UPDATE SET mime_type = excluded.mime_type, data = excluded.data`
	if _, err := c.readWriteDB.ExecContext(ctx, stmt, cardID, mimeType, data); err != nil {
		return "", errors.Wrap(err, "insert blob", slog.String("cardID", cardID))
	}
	return BlobURL(cardID), nil
}

// Get returns the blob and mime type for a card. ErrNotFound when absent.
func (c *Cache) Get(ctx context.Context, cardID string) ([]byte, string, error) {
	var row struct {
		MimeType string `db:"mime_type"`
		Data     []byte `db:"data"`
	}
	stmt := `SELECT mime_type, data FROM blobs WHERE card_id = ?`
	if err := c.readDB.GetContext(ctx, &row, stmt, cardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", errors.Wrap(ErrNotFound, "get blob", slog.String("cardID", cardID))
		}
		return nil, "", errors.Wrap(err, "get blob", slog.String("cardID", cardID))
	}
	return row.Data, row.MimeType, nil
}

// URLs returns the blob URL for every cached card. Used once at startup to
// hydrate image URLs without re-calling the generation service.
func (c *Cache) URLs(ctx context.Context) (map[string]string, error) {
	var cardIDs []string
	if err := c.readDB.SelectContext(ctx, &cardIDs, `SELECT card_id FROM blobs ORDER BY card_id`); err != nil {
		return nil, errors.Wrap(err, "list blobs")
	}

	urls := make(map[string]string, len(cardIDs))
	for _, cardID := range cardIDs {
		urls[cardID] = BlobURL(cardID)
	}
	return urls, nil
}

// Close closes both database connections.
func (c *Cache) Close() error {
	var errorList []error
	if err := c.readDB.Close(); err != nil {
		errorList = append(errorList, errors.Wrap(err, "close read database"))
	}
	if err := c.readWriteDB.Close(); err != nil {
		errorList = append(errorList, errors.Wrap(err, "close read-write database"))
	}
	return errors.Join(errorList...)
}
