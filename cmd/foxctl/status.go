package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flintwood/foxdrift/internal/browser"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Spawn a window and print its session.status result",
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
			defer win.Close()

			res, err := win.SessionStatus(ctx)
			if err != nil {
				return fmt.Errorf("session.status: %w", err)
			}
			fmt.Printf("session=%d status: %s\n", win.SessionID(), res.GetString("state"))
			return nil
		},
	}
}
