package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stratumdoc/stratum/pkg/core"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the include graph",
	Long:  `Print every include edge of the merged document set as "from -> to (line N)".`,
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

		graph, err := core.BuildGraph(merged)
		if err != nil {
			reportCheckError(err)
			os.Exit(1)
		}

		ids := make([]string, 0, len(merged))
		for id := range merged {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			for _, e := range graph.Edges(id) {
				fmt.Printf("%s -> %s (line %d)\n", e.From, e.To, e.Line)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
