// Package pipeline runs the survey-to-Darwin-Core transform end to end:
// read and normalize the three source tables, reconcile transect distances,
// merge, derive identifiers, resolve the taxon, project and write the three
// output tables.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/bbest/seagrass-dwc/internal/conf"
	"github.com/bbest/seagrass-dwc/internal/dwc"
	"github.com/bbest/seagrass-dwc/internal/merge"
	"github.com/bbest/seagrass-dwc/internal/survey"
	"github.com/bbest/seagrass-dwc/internal/transect"
	"github.com/bbest/seagrass-dwc/internal/worms"
)

// Summary reports what one run produced.
type Summary struct {
	DensityRecords int    // source rows read from the density survey
	HabitatRecords int    // source rows read from the habitat survey, before bucket mapping
	Sites          int    // sites in the coordinate lookup
	Observations   int    // merged observations after the outer join
	Events         int    // rows written to the Event table
	Occurrences    int    // rows written to the Occurrence table
	Measurements   int    // rows written to the eMoF table
	ScientificName string // resolved taxon name broadcast onto occurrences
}

// TaxonResolver is the part of the registry client the pipeline needs.
type TaxonResolver interface {
	AphiaRecordByID(ctx context.Context, aphiaID int) (*worms.AphiaRecord, error)
}

// Run executes the whole transform. It is a pure function of its input
// files: the same input always produces byte-identical output tables. All
// three tables are projected in memory before any file is written, so a
// failure in any transform stage leaves the output directory untouched.
func Run(ctx context.Context, settings *conf.Settings, resolver TaxonResolver, log *slog.Logger) (*Summary, error) {
	if log == nil {
		log = slog.Default()
	}

	log.Info("reading density survey", "path", settings.Input.Density)
	density, err := survey.ReadDensity(settings.Input.Density, log)
	if err != nil {
		return nil, err
	}
	if err := transect.ValidatePoints(density, settings.Input.Density); err != nil {
		return nil, err
	}

	log.Info("reading habitat survey", "path", settings.Input.Habitat)
	habitat, err := survey.ReadHabitat(settings.Input.Habitat, log)
	if err != nil {
		return nil, err
	}
	mapped := transect.MapBuckets(habitat, log)

	log.Info("reading site coordinates", "path", settings.Input.Coordinates)
	coords, err := survey.ReadCoordinates(settings.Input.Coordinates, log)
	if err != nil {
		return nil, err
	}

	log.Info("merging surveys",
		"density_records", len(density),
		"habitat_records", len(mapped),
		"sites", len(coords))
	observations := merge.Merge(density, mapped, coords, log)
	merge.AssignIdentities(observations, log)

	log.Info("resolving taxon", "aphia_id", settings.Worms.AphiaID)
	taxon, err := resolver.AphiaRecordByID(ctx, settings.Worms.AphiaID)
	if err != nil {
		return nil, err
	}

	events := dwc.ProjectEvents(observations)
	occurrences := dwc.ProjectOccurrences(observations, taxon)
	measurements := dwc.ProjectMeasurements(observations)

	log.Info("writing output tables",
		"dir", settings.Output.Dir,
		"events", len(events),
		"occurrences", len(occurrences),
		"measurements", len(measurements))
	if err := dwc.WriteEvents(settings.Output.Dir, events); err != nil {
		return nil, err
	}
	if err := dwc.WriteOccurrences(settings.Output.Dir, occurrences); err != nil {
		return nil, err
	}
	if err := dwc.WriteMeasurements(settings.Output.Dir, measurements); err != nil {
		return nil, err
	}

	return &Summary{
		DensityRecords: len(density),
		HabitatRecords: len(habitat),
		Sites:          len(coords),
		Observations:   len(observations),
		Events:         len(events),
		Occurrences:    len(occurrences),
		Measurements:   len(measurements),
		ScientificName: taxon.ScientificName,
	}, nil
}
