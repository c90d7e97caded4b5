package resolve

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var opts Options
var copyToClipboard bool

// ResolveCmd represents the resolve command
var ResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve dependency chains for one or more root objects.",
	Long: `Resolve dependency chains for one or more root objects.

Edges are ingested from any mix of CSV edge lists, catalog snapshot
databases, and Java source trees, merged into one graph, and expanded from
each root in the requested direction. The report lists every chain and the
terminal object of each maximal chain.

Examples:
  depscope resolve --edges deps.csv --source erp --root dbo.spOrderCreate
  depscope resolve --catalog erp=snapshots/erp.db --root spOrderCreate --direction reverse
  depscope resolve --catalog snapshots/erp.db --java erp=./src --roots-file procs.txt --direction both
  depscope resolve --edges deps.csv --root dbo.spOrderCreate --format dot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := Run(cmd.Context(), opts)
		if err != nil {
			return err
		}

		fmt.Println(output)

		if copyToClipboard {
			if err := clipboard.WriteAll(output); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to copy to clipboard: %v\n", err)
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "Output copied to clipboard")
			}
		}
		return nil
	},
}

func init() {
	flags := ResolveCmd.Flags()
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
	flags.BoolVarP(&copyToClipboard, "clipboard", "b", false, "copy output to clipboard")
}
