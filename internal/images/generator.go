// Package images turns card image prompts into cached images. Generation runs
// through a batched queue so that a freshly loaded cartridge does not fire
// dozens of requests at once.
package images

import (
	"context"
	"encoding/base64"
	"os"

	"github.com/myrjola/gumshoe/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// Treatment selects the visual style applied to a card image.
type Treatment string

const (
	TreatmentMonochrome     Treatment = "monochrome"
	TreatmentSelectiveColor Treatment = "selectiveColor"
	TreatmentMap            Treatment = "map"
)

// Result is the outcome of a generation call. OK false means the service
// declined to generate; that is not an error, the caller proceeds without the
// image.
type Result struct {
	Data     []byte
	MIMEType string
	OK       bool
}

// Generator produces an image for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, treatment Treatment) (Result, error)
}

// Client generates card images with Dall-E.
type Client struct {
	client *openai.Client
}

func NewClient() Client {
	return Client{
		client: openai.NewClient(os.Getenv("OPENAI_API_KEY")),
	}
}

func stylePrompt(prompt string, treatment Treatment) string {
	switch treatment {
	case TreatmentSelectiveColor:
		return prompt + " Black and white photograph with a single saturated accent color."
	case TreatmentMap:
		return prompt + " Hand-drawn investigation map, ink on aged paper."
	case TreatmentMonochrome:
		fallthrough
	default:
		return prompt + " Black and white photograph, film noir lighting, heavy grain."
	}
}

// Generate implements Generator. Transport failures are errors; an empty
// response is reported through Result.OK.
func (c Client) Generate(ctx context.Context, prompt string, treatment Treatment) (Result, error) {
	request := openai.ImageRequest{ //nolint:exhaustruct // this is better for readability
		Model:          openai.CreateImageModelDallE3,
		Prompt:         stylePrompt(prompt, treatment),
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	}

	response, err := c.client.CreateImage(ctx, request)
	if err != nil {
		return Result{}, errors.Wrap(err, "create image")
	}
	if len(response.Data) == 0 {
		return Result{OK: false}, nil
	}

	data, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return Result{}, errors.Wrap(err, "decode image payload")
	}

	return Result{
		Data:     data,
		MIMEType: "image/png",
		OK:       true,
	}, nil
}
