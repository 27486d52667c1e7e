package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes other processes make to the collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, ctl, err := openController(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()
		defer ctl.Close()

		events, err := svc.Watch(ctx)
		if err != nil {
			return err
		}

		src := jotlifecycle.NewSource(events)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %d note(s). Press Ctrl+C to stop.\n", len(ctl.State().Notes))
		for e := range src.Events() {
			if err := ctl.Refresh(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					break
				}
				slog.Warn("refresh failed", "error", err)
				continue
			}
			fmt.Fprintf(out, "%s: %d note(s)\n", e, len(ctl.State().Notes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
