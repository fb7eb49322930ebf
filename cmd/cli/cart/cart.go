package cart

import (
	"fmt"
	"os"

	"github.com/myrjola/gumshoe/internal/cartridge"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "cart",
	Title: "Cartridge operations",
}

var Validate = &cobra.Command{
	Use:     "validate [locator]",
	GroupID: "cart",
	Short:   "Validate a cartridge",
	Long:    `Loads and transforms a cartridge document, reporting entity counts.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := cartridge.Load(cmd.Context(), args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Cartridge load error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s (%s) is valid\n", c.Metadata.Title, c.Metadata.Version)
		fmt.Printf("  characters:   %d\n", len(c.Characters))
		fmt.Printf("  locations:    %d\n", len(c.Locations))
		fmt.Printf("  objects:      %d\n", len(c.Objects))
		fmt.Printf("  events:       %d\n", len(c.Events))
		fmt.Printf("  sublocations: %d\n", len(c.Sublocations))
		fmt.Printf("  testimonies:  %d\n", len(c.Testimonies))
		fmt.Printf("  bounties:     %d\n", len(c.Bounties))
		fmt.Printf("  clues:        %d\n", len(c.CaseFile.Clues))
		fmt.Printf("  slots:        %d\n", len(c.CaseFile.Slots))
	},
}

var Summary = &cobra.Command{
	Use:     "summary [locator]",
	GroupID: "cart",
	Short:   "Summarize a cartridge",
	Long:    `Prints the cast and map of a cartridge document.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := cartridge.Load(cmd.Context(), args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Cartridge load error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s\n%s\n\n", c.StoryInfo.Title, c.StoryInfo.Synopsis)
		fmt.Println("Cast:")
		for _, character := range c.Characters {
			fmt.Printf("  %s (%s) - %s\n", character.Name, character.Role, character.Occupation)
		}
		fmt.Println("Locations:")
		for _, location := range c.Locations {
			fmt.Printf("  %s, %d hotspots\n", location.Name, len(location.Hotspots))
		}
	},
}
