package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available report styles",
	Long:  `Lists the embedded report styles plus any found in a local styles directory.`,
	RunE:  runStyles,
}

func runStyles(cmd *cobra.Command, args []string) error {
	registry, err := loadStyles()
	if err != nil {
		return err
	}

	styles := registry.ListWithDescriptions()
	if len(styles) == 0 {
		fmt.Println("No styles found")
		return nil
	}

	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available styles:")
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %-20s %s\n", name, styles[name])
	}
	fmt.Println()

	return nil
}
