package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <style>",
	Short: "Describe a report style in detail",
	Long:  `Shows the channel palette, figure geometry, and time format of a style.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	registry, err := loadStyles()
	if err != nil {
		return err
	}

	style, err := registry.Get(args[0])
	if err != nil {
		return fmt.Errorf("style not found: %w", err)
	}

	fmt.Printf("Style: %s\n", style.Name)
	fmt.Printf("Description: %s\n", style.Description)
	fmt.Printf("Time format: %s\n", style.TimeFormat)
	fmt.Printf("Figure: %.0fx%.0f @ %d dpi\n\n", style.Figure.Width, style.Figure.Height, style.Figure.DPI)

	fmt.Println("Channels:")
	for name, channel := range style.Channels {
		fmt.Printf("  %s\n", name)
		if channel.Label != "" {
			fmt.Printf("    Label: %s\n", channel.Label)
		}
		if channel.Unit != "" {
			fmt.Printf("    Unit: %s\n", channel.Unit)
		}
		if channel.Color != "" {
			fmt.Printf("    Color: %s\n", channel.Color)
		}
	}

	if len(style.MoodColors) > 0 {
		fmt.Printf("\nMood colors: %v\n", style.MoodColors)
	}

	fmt.Println()
	return nil
}
