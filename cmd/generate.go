package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/higher-kinded-j/opticgen/pkg/action/generate"
	"github.com/higher-kinded-j/opticgen/pkg/opticgen"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	options := opticgen.NewOptions()

	var genCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate optics",
		Long:  "Analyse the types of a package and render lenses, prisms, traversals, folds and navigators for them",
		Run: func(c *cobra.Command, args []string) {
			// per-type declarations come from config only; flags cover the rest
			if viper.IsSet("types") {
				if err := viper.UnmarshalKey("types", &options.Types); err != nil {
					slog.With("error", err).Error("invalid types declaration")
					os.Exit(1)
				}
			}
			outFile, err := generate.Run(options)
			if err != nil {
				slog.With("error", err).Error("generation failed")
				os.Exit(1)
			}
			slog.With("file", outFile).Info("optics written")
		},
	}
	genCmd.PersistentFlags().StringVarP(&options.InDir, "input-directory", "i", ".", "directory of the package to analyse")
	genCmd.PersistentFlags().StringVarP(&options.OutDir, "output-directory", "o", "optics", "directory to write generated optics")
	genCmd.PersistentFlags().StringVarP(&options.OutFile, "output-file", "f", "optics_gen.go", "output file where optics will be written")
	genCmd.PersistentFlags().StringVarP(&options.TargetPackage, "package", "p", "", "package name for generated code (defaults to the scanned package)")
	genCmd.PersistentFlags().IntVarP(&options.MaxDepth, "max-depth", "d", 1, "navigator depth bound")
	genCmd.PersistentFlags().StringSliceVar(&options.Include, "include", []string{}, "only navigate the named fields")
	genCmd.PersistentFlags().StringSliceVar(&options.Exclude, "exclude", []string{}, "never navigate the named fields")
	genCmd.PersistentFlags().BoolVarP(&options.AllowMutable, "allow-mutable", "m", false, "generate copy-based optics for types with qualifying setters")

	return genCmd
}
