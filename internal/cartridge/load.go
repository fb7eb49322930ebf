package cartridge

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/myrjola/gumshoe/internal/errors"
	"github.com/myrjola/gumshoe/internal/models"
)

var ErrCartridgeUnavailable = errors.NewSentinel("cartridge unavailable")

// Parse unmarshals a raw cartridge document and transforms it into the
// normalized runtime model. Missing optional fields are defaulted; malformed
// JSON is an error with no partial result.
func Parse(data []byte) (models.Cartridge, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Cartridge{}, errors.Wrap(err, "unmarshal cartridge")
	}
	return transform(doc), nil
}

// Load retrieves the cartridge document from an http(s) URL or a local file
// path and parses it. Retrieval failure is a hard failure: the caller never
// receives a degraded cartridge.
func Load(ctx context.Context, locator string) (models.Cartridge, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		data, err = fetch(ctx, locator)
	} else {
		data, err = os.ReadFile(locator)
	}
	if err != nil {
		return models.Cartridge{}, errors.Wrap(err, "retrieve cartridge", slog.String("locator", locator))
	}

	cart, err := Parse(data)
	if err != nil {
		return models.Cartridge{}, errors.Wrap(err, "parse cartridge", slog.String("locator", locator))
	}
	return cart, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build cartridge request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch cartridge")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Wrap(ErrCartridgeUnavailable, "unexpected status",
			slog.Int("status", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read cartridge body")
	}
	return data, nil
}
