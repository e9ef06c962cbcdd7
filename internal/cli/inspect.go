package cli

import (
	"fmt"

	"github.com/plantsense/plantsense-cli/internal/dataset"
	"github.com/plantsense/plantsense-cli/internal/timeline"
	"github.com/spf13/cobra"
)

var (
	inspectPlant string
	inspectWASM  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <export>",
	Short: "Inspect timestamp classification of an export",
	Long: `Shows how each record's timestamp classifies (absolute epoch vs device
uptime) and the reconciled monitoring period, without computing statistics.
Useful for checking an export before a full analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPlant, "plant", dataset.DefaultPlantID, "Plant id inside an RTDB envelope")
	inspectCmd.Flags().StringVar(&inspectWASM, "classifier-wasm", "", "Load the timestamp classifier from a WASM module")
}

func runInspect(cmd *cobra.Command, args []string) error {
	classifier, cleanup, err := buildClassifier(cmd.Context(), inspectWASM)
	if err != nil {
		return err
	}
	defer cleanup()

	logs, err := dataset.LoadFile(args[0], inspectPlant)
	if err != nil {
		return err
	}

	records, err := dataset.Normalize(logs)
	if err != nil {
		return err
	}

	absolute := 0
	for _, record := range records {
		if classifier.Classify(record.Timestamp) == timeline.ClassAbsolute {
			absolute++
		}
	}
	uptime := len(records) - absolute

	reconciler := timeline.NewReconciler(classifier)
	normalized, period, err := reconciler.Reconcile(records)
	if err != nil {
		return err
	}

	fmt.Printf("Records: %d\n", len(records))
	fmt.Printf("Absolute timestamps: %d\n", absolute)
	fmt.Printf("Uptime timestamps: %d\n", uptime)
	if absolute == 0 {
		fmt.Println("Axis: synthetic (no absolute anchor; elapsed time from a fixed epoch)")
	} else {
		fmt.Println("Axis: anchored (uptime records inherit their nearest absolute neighbor)")
	}
	fmt.Println()
	fmt.Printf("Start: %s\n", normalized[0].TimeLabel)
	fmt.Printf("End: %s\n", normalized[len(normalized)-1].TimeLabel)
	fmt.Printf("Duration: %.1f hours\n", period.Duration.Hours())

	return nil
}
