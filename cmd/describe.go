package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/higher-kinded-j/opticgen/internal/classify"
	"github.com/higher-kinded-j/opticgen/internal/introspect"
)

func init() {
	rootCmd.AddCommand(NewDescribeCommand())
}

func NewDescribeCommand() *cobra.Command {
	var inDir string

	var describeCmd = &cobra.Command{
		Use:   "describe [type...]",
		Short: "describe analysed type shapes",
		Long:  "Analyse the types of a package and dump the shapes the generator would see, without generating anything",
		Run: func(c *cobra.Command, args []string) {
			insp, err := introspect.Load(inDir)
			if err != nil {
				slog.With("error", err).Error("analysis failed")
				os.Exit(1)
			}
			only := make(map[string]bool, len(args))
			for _, name := range args {
				only[name] = true
			}
			dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
			for _, decl := range insp.Decls() {
				if len(only) > 0 && !only[decl.Ref.Name] {
					continue
				}
				shape := classify.Analyse(decl)
				fmt.Fprintf(os.Stdout, "%s (%s)\n%s\n", shape.Ref.Name, shape.Kind, dumper.Sdump(shape))
			}
		},
	}
	describeCmd.PersistentFlags().StringVarP(&inDir, "input-directory", "i", ".", "directory of the package to analyse")

	return describeCmd
}
