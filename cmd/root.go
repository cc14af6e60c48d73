package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bbest/seagrass-dwc/cmd/process"
	"github.com/bbest/seagrass-dwc/cmd/taxon"
	"github.com/bbest/seagrass-dwc/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seagrass-dwc",
		Short: "Seagrass survey to Darwin Core transformer",
		Long:  "Transforms Hakai seagrass field surveys into OBIS-ready Darwin Core Event, Occurrence and Extended Measurement-or-Fact tables.",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		process.Command(settings),
		taxon.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Density, "density", viper.GetString("input.density"), "Path to the point-based density survey CSV")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Habitat, "habitat", viper.GetString("input.habitat"), "Path to the range-based habitat survey CSV")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Coordinates, "coordinates", viper.GetString("input.coordinates"), "Path to the site coordinate lookup CSV")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Dir, "output", "o", viper.GetString("output.dir"), "Directory the output tables are written to")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	if err := viper.BindPFlag("input.density", rootCmd.PersistentFlags().Lookup("density")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	if err := viper.BindPFlag("input.habitat", rootCmd.PersistentFlags().Lookup("habitat")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	if err := viper.BindPFlag("input.coordinates", rootCmd.PersistentFlags().Lookup("coordinates")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	if err := viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("output")); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
