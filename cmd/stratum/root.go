package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratumdoc/stratum"
)

var (
	verbose   bool
	workspace string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stratum",
	Short: "Compose layered Markdown instruction documents",
	Long: `Stratum validates, merges, and renders layered instruction documents
(subagent personas, slash commands, shared includes). Documents live in
precedence layers (base < extensions < local), carry optional YAML front
matter, and reference each other with {include:identifier} directives.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (default: found from working directory)")
}

// resolveWorkspaceRoot returns the --workspace flag or walks up from the
// working directory looking for a workspace indicator.
func resolveWorkspaceRoot() (string, error) {
	if workspace != "" {
		return workspace, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	root, err := stratum.FindWorkspaceRoot(wd)
	if err != nil {
		// No indicator found; treat the working directory as the root.
		return wd, nil
	}
	return root, nil
}

// openWorkspace opens the resolved workspace with the default logger.
func openWorkspace() (*stratum.Workspace, error) {
	root, err := resolveWorkspaceRoot()
	if err != nil {
		return nil, err
	}
	return stratum.Open(root, stratum.WithLogger(slog.Default()))
}
