package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List effective documents",
	Long:  `List every document identifier with the layer that wins after merging.`,
	Run: func(cmd *cobra.Command, args []string) {
		ws, err := openWorkspace()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening workspace: %v\n", err)
			os.Exit(1)
		}

		merged, err := ws.Effective()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ids := make([]string, 0, len(merged))
		for id := range merged {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			doc := merged[id]
			name := ""
			if n, ok := doc.Metadata["name"].(string); ok {
				name = "  " + n
			}
			fmt.Printf("%-16s %s%s\n", doc.Layer, id, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
