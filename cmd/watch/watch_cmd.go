package watch

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/migratehq/depscope/cmd/resolve"
)

var opts resolve.Options

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run a resolution whenever its edge inputs change.",
	Long: `Re-run a resolution whenever its edge inputs change.

Takes the same inputs as 'depscope resolve', runs the analysis once, then
watches the edge files, catalog snapshots, and Java trees and re-runs on
every change. Useful while iterating on extracted edge data.

Example:
  depscope watch --edges deps.csv --source erp --root dbo.spOrderCreate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		output, err := resolve.Run(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Println(output)

		return watchAndRerun(ctx, opts, func(output string) {
			fmt.Println(separator)
			fmt.Println(output)
		})
	},
}

const separator = "────────────────────────────────────────"

func init() {
	flags := WatchCmd.Flags()
	flags.StringSliceVarP(&opts.EdgeFiles, "edges", "e", nil, "CSV edge list file(s)")
	flags.StringSliceVar(&opts.Catalogs, "catalog", nil, "catalog snapshot database(s), as [source=]path")
	flags.StringSliceVar(&opts.JavaTrees, "java", nil, "Java source tree(s) to scan, as [source=]path")
	flags.StringSliceVarP(&opts.Roots, "root", "r", nil, "root object name(s), fully or partially qualified")
	flags.StringVar(&opts.RootsFile, "roots-file", "", "file with one root object name per line")
	flags.StringVarP(&opts.Source, "source", "s", "", "source scope for resolving root names")
	flags.StringVar(&opts.Container, "container", "", "container (database) scope for resolving root names")
	flags.StringVarP(&opts.Direction, "direction", "d", "forward", "traversal direction: forward, reverse, or both")
	flags.IntVar(&opts.MaxDepth, "max-depth", 0, "depth cap in hops (0 = node count)")
	flags.StringVarP(&opts.Format, "format", "f", "text", "output format: text, json, or dot")
	flags.StringVar(&opts.Label, "label", "", "optional label for the report")
}
