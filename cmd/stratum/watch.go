package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stratumdoc/stratum/pkg/adapters/fs"
)

var watchOut string

var watchCmd = &cobra.Command{
	Use:   "watch [roots...]",
	Short: "Recompose on change",
	Long: `Watch the layer directories and recompose the roots whenever a document
changes. Runs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := openWorkspace()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening workspace: %v\n", err)
			os.Exit(1)
		}

		out := watchOut
		if out == "" {
			out = ws.Config().OutputDir
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		recompose := func() {
			docs, err := ws.Compose(args)
			if err != nil {
				reportCheckError(err)
				return
			}
			if err := fs.WriteResolved(out, docs, slog.Default()); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				return
			}
			slog.Info("composed", "roots", len(docs), "out", out)
		}

		events, err := ws.Watch(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
			os.Exit(1)
		}

		// Initial composition before waiting for changes.
		recompose()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				slog.Debug("change detected", "event", event.String())
				recompose()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "Output directory (default: workspace config)")
}
