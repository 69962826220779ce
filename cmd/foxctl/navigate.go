package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flintwood/foxdrift/internal/browser"
)

func newNavigateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navigate <url>",
		Short: "Spawn a window, navigate its initial tab to url, print the resulting title",
		Args:  cobra.ExactArgs(1),
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

			tabID := win.InitialTabID()
			if _, err := win.BrowsingContextNavigate(ctx, tabID, browser.MainFrame, args[0]); err != nil {
				return fmt.Errorf("navigating: %w", err)
			}

			title, err := win.BrowsingContextGetTitle(ctx, tabID, browser.MainFrame)
			if err != nil {
				return fmt.Errorf("reading title: %w", err)
			}
			fmt.Printf("session=%d tab=%d title=%q\n", win.SessionID(), tabID, title)
			return nil
		},
	}
	return cmd
}
