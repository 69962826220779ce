package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flintwood/foxdrift/internal/browser"
)

// buildConfig assembles a browser.Config from the persistent flags
// every subcommand shares.
func buildConfig(cmd *cobra.Command) (browser.Config, error) {
	binary, _ := cmd.Flags().GetString("binary")
	extPath, _ := cmd.Flags().GetString("extension")
	headless, _ := cmd.Flags().GetBool("headless")
	port, _ := cmd.Flags().GetInt("port")

	if extPath == "" {
		return browser.Config{}, fmt.Errorf("--extension (or FOXDRIFT_EXTENSION_PATH) is required")
	}

	return browser.Config{
		Binary:    binary,
		Extension: browser.ExtensionSourceDir{Path: extPath},
		Headless:  headless,
		Port:      port,
	}, nil
}

func newSpawnCmd() *cobra.Command {
	var waitSeconds int

	cmd := &cobra.Command{
		Use:   "spawn",
		Short: "Launch a Firefox window, wait for its READY handshake, then close it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			driver, err := browser.NewDriver(cfg)
			if err != nil {
				return fmt.Errorf("creating driver: %w", err)
			}
			defer driver.Close(context.Background())

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			win, err := driver.Spawn(ctx)
			if err != nil {
				return fmt.Errorf("spawning window: %w", err)
			}
			fmt.Printf("spawned session=%d pid=%d tab=%d port=%d\n", win.SessionID(), win.PID(), win.InitialTabID(), win.Port())

			if waitSeconds > 0 {
				time.Sleep(time.Duration(waitSeconds) * time.Second)
			}

			return win.Close()
		},
	}

	cmd.Flags().IntVar(&waitSeconds, "wait", 0, "seconds to keep the window open before closing it")
	return cmd
}
