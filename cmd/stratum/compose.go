package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stratumdoc/stratum/pkg/adapters/fs"
)

var (
	composeOut  string
	composeJSON bool
)

var composeCmd = &cobra.Command{
	Use:   "compose [roots...]",
	Short: "Compose root documents",
	Long: `Resolve overrides and expand includes for the given root identifiers.
With no roots, the workspace's configured roots are composed; with neither,
every document not included by another is treated as a root.

Prints resolved bodies to stdout by default; --out writes one file per root.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := openWorkspace()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening workspace: %v\n", err)
			os.Exit(1)
		}

		docs, err := ws.Compose(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if composeJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(docs); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		if composeOut != "" {
			if err := fs.WriteResolved(composeOut, docs, slog.Default()); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %d document(s) to %s\n", len(docs), composeOut)
			return
		}

		for _, doc := range docs {
			fmt.Print(doc.Body)
			if len(docs) > 1 {
				fmt.Println()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
	composeCmd.Flags().StringVarP(&composeOut, "out", "o", "", "Write resolved documents to this directory")
	composeCmd.Flags().BoolVar(&composeJSON, "json", false, "Output resolved documents as JSON (includes provenance)")
}
