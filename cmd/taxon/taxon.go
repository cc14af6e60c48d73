// Package taxon implements the subcommand that looks up a taxon in the
// WoRMS registry without running the transform.
package taxon

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbest/seagrass-dwc/internal/conf"
	"github.com/bbest/seagrass-dwc/internal/errors"
	"github.com/bbest/seagrass-dwc/internal/worms"
)

// Command creates the taxon command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxon [AphiaID]",
		Short: "Look up a taxon in the WoRMS registry",
		Long:  "Resolves an AphiaID against the WoRMS registry and prints the record. Without an argument the configured taxon is resolved.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaxon(cmd, settings, args)
		},
	}

	return cmd
}

func runTaxon(cmd *cobra.Command, settings *conf.Settings, args []string) error {
	aphiaID := settings.Worms.AphiaID
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid AphiaID %q: %w", args[0], err)
		}
		aphiaID = parsed
	}

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

	record, err := client.AphiaRecordByID(cmd.Context(), aphiaID)
	if err != nil {
		if errors.IsNotFound(err) {
			return fmt.Errorf("no WoRMS record for AphiaID %d", aphiaID)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "AphiaID:         %d\n", record.AphiaID)
	fmt.Fprintf(out, "Scientific name: %s %s\n", record.ScientificName, record.Authority)
	fmt.Fprintf(out, "Rank:            %s\n", record.Rank)
	fmt.Fprintf(out, "Status:          %s\n", record.Status)
	fmt.Fprintf(out, "Classification:  %s > %s > %s > %s > %s > %s\n",
		record.Kingdom, record.Phylum, record.Class, record.Order, record.Family, record.Genus)
	fmt.Fprintf(out, "LSID:            %s\n", record.Lsid)
	if record.Citation != "" {
		fmt.Fprintf(out, "Citation:        %s\n", record.Citation)
	}

	return nil
}
