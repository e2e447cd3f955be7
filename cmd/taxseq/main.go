package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "taxseq",
		Short: "Fetch NCBI nucleotide records for a taxon and summarise their lengths",
		Long: `taxseq looks up a taxonomic ID in NCBI Taxonomy, pages through the matching
nucleotide records, keeps those whose length lies within [min, max], and
writes taxid_<ID>_filtered.csv plus a length-sorted taxid_<ID>_plot.png.

Inputs missing from flags, the config file or the environment are prompted for.`,
		Example: `  taxseq --email me@example.org --taxid 2697049 --min 29000 --max 30000
  printf 'me@example.org\n\n562\n500\n5000\n' | taxseq`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		// main prints the error itself.
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o)
		},
	}
	o.bind(cmd)
	return cmd
}
