// Package process implements the subcommand that runs the survey to Darwin
// Core transform end to end.
package process

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbest/seagrass-dwc/internal/conf"
	"github.com/bbest/seagrass-dwc/internal/logging"
	"github.com/bbest/seagrass-dwc/internal/pipeline"
	"github.com/bbest/seagrass-dwc/internal/worms"
)

// Command creates the process command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Transform the survey tables into Darwin Core output",
		Long:  "Reads the density and habitat surveys plus the site coordinate lookup, merges them into event-keyed observations, resolves the taxon against WoRMS, and writes the Event, Occurrence and eMoF tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, settings)
		},
	}

	return cmd
}

func runProcess(cmd *cobra.Command, settings *conf.Settings) error {
	log := logging.Structured()

	client, err := worms.NewClient(worms.Config{
		BaseURL:     settings.Worms.BaseURL,
		Timeout:     time.Duration(settings.Worms.Timeout) * time.Second,
		CacheTTL:    time.Duration(settings.Worms.CacheTTL) * time.Hour,
		RateLimitMS: settings.Worms.RateLimitMS,
	})
	if err != nil {
		return fmt.Errorf("failed to create WoRMS client: %w", err)
	}
	defer client.Close()

	start := time.Now()
	summary, err := pipeline.Run(cmd.Context(), settings, client, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Processed %d density and %d habitat records from %d sites into %d observations (%s)\n",
		summary.DensityRecords, summary.HabitatRecords, summary.Sites,
		summary.Observations, summary.ScientificName)
	fmt.Fprintf(cmd.OutOrStdout(),
		"Wrote %d events, %d occurrences and %d measurements to %s in %s\n",
		summary.Events, summary.Occurrences, summary.Measurements,
		settings.Output.Dir, time.Since(start).Round(time.Millisecond))

	return nil
}
