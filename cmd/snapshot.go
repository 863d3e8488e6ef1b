package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/higher-kinded-j/opticgen/pkg/action/snapshot"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	options := &snapshot.Options{Generate: opticgen.NewOptions()}

	var snapCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "generate and archive optics",
		Long:  "Generate optics, archive the rendered file under a stamp and print the diff against the previous run",
		Run: func(c *cobra.Command, args []string) {
			if viper.IsSet("types") {
				if err := viper.UnmarshalKey("types", &options.Generate.Types); err != nil {
					slog.With("error", err).Error("invalid types declaration")
					os.Exit(1)
				}
			}
			diff, err := snapshot.Run(options)
			if err != nil {
				slog.With("error", err).Error("snapshot failed")
				os.Exit(1)
			}
			if diff == "" {
				slog.Info("no changes since previous snapshot")
				return
			}
			fmt.Fprint(os.Stdout, diff)
		},
	}
	snapCmd.PersistentFlags().StringVarP(&options.Generate.InDir, "input-directory", "i", ".", "directory of the package to analyse")
	snapCmd.PersistentFlags().StringVarP(&options.Generate.OutDir, "output-directory", "o", "optics", "directory to write generated optics")
	snapCmd.PersistentFlags().StringVarP(&options.Generate.OutFile, "output-file", "f", "optics_gen.go", "output file where optics will be written")
	snapCmd.PersistentFlags().StringVarP(&options.SnapshotDir, "snapshot-directory", "s", "", "directory to archive snapshots under")
	snapCmd.PersistentFlags().StringVar(&options.Stamp, "stamp", "", "snapshot stamp (defaults to the current time)")

	return snapCmd
}
