package cli

import (
	"fmt"
	"os"

	"github.com/plantsense/plantsense-cli/internal/analysis"
	"github.com/plantsense/plantsense-cli/internal/dataset"
	"github.com/plantsense/plantsense-cli/internal/encoding"
	"github.com/plantsense/plantsense-cli/internal/recorder"
	"github.com/plantsense/plantsense-cli/internal/report"
	"github.com/plantsense/plantsense-cli/internal/stats"
	"github.com/spf13/cobra"
)

var (
	analyzePlant          string
	analyzeWindow         int
	analyzeFormat         string
	analyzeStyle          string
	analyzeOut            string
	analyzeIncludeRecords bool
	analyzeWASM           string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <export>",
	Short: "Analyze a sensor log export",
	Long: `Runs the full analysis over an export file: validates and sorts the
records, reconciles epoch and uptime timestamps onto one absolute axis,
computes smoothed trend series, and prints the statistics report.

Accepts an RTDB export envelope, a flat {id: entry} JSON mapping, or an
NDJSON file with one entry per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzePlant, "plant", dataset.DefaultPlantID, "Plant id inside an RTDB envelope")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", stats.DefaultWindow, "Rolling-average window, in readings")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Report format: text|json")
	analyzeCmd.Flags().StringVar(&analyzeStyle, "style", "default", "Report style name")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write the normalized series to an NDJSON file")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeRecords, "include-records", false, "Include the normalized series in JSON reports")
	analyzeCmd.Flags().StringVar(&analyzeWASM, "classifier-wasm", "", "Load the timestamp classifier from a WASM module")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	registry, err := loadStyles()
	if err != nil {
		return err
	}
	style, err := registry.Get(analyzeStyle)
	if err != nil {
		return fmt.Errorf("style not found: %w", err)
	}

	classifier, cleanup, err := buildClassifier(cmd.Context(), analyzeWASM)
	if err != nil {
		return err
	}
	defer cleanup()

	logs, err := dataset.LoadFile(args[0], analyzePlant)
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(analysis.Config{
		Window:     analyzeWindow,
		Classifier: classifier,
		TimeFormat: style.TimeFormat,
	})
	result, err := engine.Run(logs)
	if err != nil {
		return err
	}

	if analyzeOut != "" {
		writer, err := recorder.NewSeriesWriter(analyzeOut, encoding.NewJSONEncoder())
		if err != nil {
			return err
		}
		if err := writer.WriteAll(result.Records); err != nil {
			return fmt.Errorf("failed to write series: %w", err)
		}
	}

	switch analyzeFormat {
	case "json":
		data, err := report.RenderJSON(result, style, analyzeIncludeRecords)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
	default:
		fmt.Print(report.RenderText(result, style))
	}

	return nil
}
