package cli

import (
	"fmt"
	"net"
	"runtime"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check environment and print connection info",
	Long:  `Validates the local environment, checks port availability, and provides connection examples for the serve mode.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("🌱 PlantSense Environment Check")

	fmt.Printf("Go Version:        %s\n", runtime.Version())
	fmt.Printf("OS/Arch:           %s/%s\n\n", runtime.GOOS, runtime.GOARCH)

	// Check styles
	registry, err := loadStyles()
	if err != nil {
		fmt.Printf("❌ Failed to load styles: %v\n\n", err)
	} else {
		styles := registry.List()
		fmt.Printf("✅ Found %d report styles: %v\n", len(styles), styles)
		if dir := getStylesDir(); dir != "" {
			fmt.Printf("   Local styles directory: %s\n", dir)
		}
		fmt.Println()
	}

	// Check default port availability
	defaultPort := 8799
	if isPortAvailable(defaultPort) {
		fmt.Printf("✅ Default port %d is available\n\n", defaultPort)
	} else {
		fmt.Printf("⚠️  Default port %d is in use\n", defaultPort)
		fmt.Printf("   Use --port flag to specify a different port\n\n")
	}

	fmt.Println("📡 Connection Examples:")
	fmt.Println()

	fmt.Println("Analyze an export:")
	fmt.Println("  curl -X POST http://localhost:8799/v1/plants/analyze \\")
	fmt.Println("    -H 'Content-Type: application/json' \\")
	fmt.Println("    --data @smartplantsensor-export.json")
	fmt.Println()

	fmt.Println("Subscribe to the normalized series (JavaScript):")
	fmt.Println("  const ws = new WebSocket('ws://localhost:8799/v1/plants/series');")
	fmt.Println("  ws.onmessage = (event) => {")
	fmt.Println("    const record = JSON.parse(event.data);")
	fmt.Println("    console.log(record.time_label, record.soil_smooth);")
	fmt.Println("  };")
	fmt.Println()

	fmt.Println("Subscribe to the normalized series (Go):")
	fmt.Println("  conn, _, err := websocket.DefaultDialer.Dial(\"ws://localhost:8799/v1/plants/series\", nil)")
	fmt.Println("  for {")
	fmt.Println("    _, message, err := conn.ReadMessage()")
	fmt.Println("    var record NormalizedRecord")
	fmt.Println("    json.Unmarshal(message, &record)")
	fmt.Println("  }")
	fmt.Println()

	fmt.Println("✅ Environment check complete")
	return nil
}

func isPortAvailable(port int) bool {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	listener.Close()
	return true
}
