package main

import "github.com/plantsense/plantsense-cli/internal/cli"

func main() {
	cli.Execute()
}
