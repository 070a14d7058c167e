package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stratumdoc/stratum/pkg/core"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the workspace",
	Long: `Load every document, parse front matter, merge layers, and verify the
include graph. Exits non-zero on the first problem found.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := openWorkspace()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening workspace: %v\n", err)
			os.Exit(1)
		}

		if err := ws.Check(); err != nil {
			reportCheckError(err)
			os.Exit(1)
		}

		fmt.Println("ok")
	},
}

// reportCheckError prints the error kind and the offending identifiers;
// cycles get their full path.
func reportCheckError(err error) {
	var (
		dup       *core.DuplicateIdentifierError
		malformed *core.MalformedFrontMatterError
		missing   *core.UnresolvedIncludeError
		cyclic    *core.CyclicIncludeError
	)
	switch {
	case errors.As(err, &dup):
		fmt.Fprintf(os.Stderr, "duplicate identifier: %q appears twice in layer %s\n", dup.ID, dup.Layer)
	case errors.As(err, &malformed):
		fmt.Fprintf(os.Stderr, "malformed front matter: %s: %s\n", malformed.ID, malformed.Reason)
	case errors.As(err, &missing):
		fmt.Fprintf(os.Stderr, "unresolved include: %s references %q (line %d)\n", missing.From, missing.Missing, missing.Line)
	case errors.As(err, &cyclic):
		fmt.Fprintf(os.Stderr, "include cycle: %s\n", strings.Join(cyclic.Path, " -> "))
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
