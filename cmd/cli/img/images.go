package img

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/myrjola/gumshoe/internal/images"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "img",
	Title: "Image operations",
}

func init() {
	Generate.Flags().String("out", "./out.png", "path to generated image file")
	Generate.Flags().String("treatment", string(images.TreatmentMonochrome),
		"color treatment: monochrome, selectiveColor, or map")
}

var Generate = &cobra.Command{
	Use:     "gen [prompt]",
	GroupID: "img",
	Short:   "Generate card image",
	Long:    `Generates a card image with Dall-E using the engine's color treatments`,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := images.NewClient()

		ctx := context.Background()

		prompt := strings.Join(args, " ")
		treatment, err := cmd.Flags().GetString("treatment")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid treatment flag: %v\n", err)
			return
		}

		result, err := client.Generate(ctx, prompt, images.Treatment(treatment))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Image creation error: %v\n", err)
			return
		}
		if !result.OK {
			_, _ = fmt.Fprintln(os.Stderr, "The service declined to generate an image")
			return
		}

		imgData, err := png.Decode(bytes.NewReader(result.Data))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "PNG decode error: %v\n", err)
			return
		}

		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid out flag: %v\n", err)
			return
		}
		file, err := os.Create(outPath)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "File creation error: %v\n", err)
			return
		}
		defer func(file *os.File) {
			_ = file.Close()
		}(file)

		if err := png.Encode(file, imgData); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "PNG encode error: %v\n", err)
			return
		}

		fmt.Printf("The image was saved as %s\n", outPath)
	},
}
