// Command foxctl drives the control core from a terminal: spawn a
// Firefox window, poke it with a handful of verbs, and shut it down
// cleanly. It's a harness for exercising internal/browser by hand, not
// a general-purpose automation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "foxctl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "foxctl",
		Short: "Exercise the foxdrift control core against a real Firefox binary",
	}

	root.PersistentFlags().String("binary", os.Getenv("FOXDRIFT_FIREFOX_BINARY"), "path to the Firefox executable")
	root.PersistentFlags().String("extension", os.Getenv("FOXDRIFT_EXTENSION_PATH"), "path to the unpacked controller extension")
	root.PersistentFlags().Bool("headless", false, "launch with -headless")
	root.PersistentFlags().Int("port", 0, "fixed pool listen port (0 = any free port)")

	root.AddCommand(newSpawnCmd(), newStatusCmd(), newNavigateCmd())
	return root
}
