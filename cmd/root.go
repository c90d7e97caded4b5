package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/migratehq/depscope/cmd/resolve"
	"github.com/migratehq/depscope/cmd/watch"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "depscope",
	Short: "Trace dependency chains between database catalog objects",
	Long: `Depscope resolves dependency chains between catalog objects (procedures,
views, tables, functions, triggers, UI components) collected from multiple
database instances, and reports the terminal objects of every chain.

Edges come from catalog snapshots, CSV edge lists, or Java source scans.
Use 'depscope resolve --help' for the analysis options.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(resolve.ResolveCmd)
	rootCmd.AddCommand(watch.WatchCmd)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)
}
