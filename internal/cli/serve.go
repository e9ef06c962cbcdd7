package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/plantsense/plantsense-cli/internal/analysis"
	"github.com/plantsense/plantsense-cli/internal/server"
	"github.com/plantsense/plantsense-cli/internal/stats"
	"github.com/spf13/cobra"
)

var (
	serveHost   string
	servePort   int
	serveToken  string
	serveWindow int
	serveGzip   bool
	serveWASM   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	Long: `Starts an HTTP server that runs the analysis on posted exports and
streams the latest normalized series to WebSocket subscribers (chart
front-ends).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8799, "Port to listen on")
	serveCmd.Flags().StringVar(&serveToken, "token", "", "Bearer token required on analyze requests (empty disables auth)")
	serveCmd.Flags().IntVar(&serveWindow, "window", stats.DefaultWindow, "Rolling-average window, in readings")
	serveCmd.Flags().BoolVar(&serveGzip, "gzip", true, "Accept gzip-compressed request bodies")
	serveCmd.Flags().StringVar(&serveWASM, "classifier-wasm", "", "Load the timestamp classifier from a WASM module")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	classifier, cleanup, err := buildClassifier(ctx, serveWASM)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := analysis.NewEngine(analysis.Config{
		Window:     serveWindow,
		Classifier: classifier,
	})

	srv := server.NewServer(server.Config{
		Host:       serveHost,
		Port:       servePort,
		Token:      serveToken,
		AcceptGzip: serveGzip,
	}, engine)

	return srv.Start(ctx)
}
