package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/fileflow/internal/graphfile"
)

// variable for flags
var (
	dotOutput bool
	output    string
)

var cfgCmd = &cobra.Command{
	Use:   "cfg [file]",
	Short: "Print the control flow graph of a graph file",
	Long: `Prints every flow point reachable from the entries of the graph, or writes
the graph in GraphViz DOT format.
Example) fileflow cfg --dot -o cleanup.dot cleanup.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCFG(cmd.OutOrStdout(), args[0], dotOutput, output); err != nil {
			logger.Error("Failed to print control flow graph", zap.String("path", args[0]), zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	cfgCmd.Flags().BoolVar(&dotOutput, "dot", false, "Output the graph in GraphViz DOT format")
	cfgCmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to stdout)")
}

func runCFG(stdout io.Writer, path string, dot bool, outPath string) error {
	g, err := graphfile.Load(path)
	if err != nil {
		return err
	}

	w := stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	for _, entry := range g.Entries {
		if dot {
			err = entry.PrintDot(w)
		} else {
			err = entry.Fprint(w)
		}
		if err != nil {
			return err
		}
	}

	if outPath != "" {
		fmt.Fprintf(stdout, "Graph written to %s\n", outPath)
	}
	return nil
}
