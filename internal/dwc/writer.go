package dwc

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

// Output file names, fixed relative locations within the output directory.
const (
	EventFile       = "event.csv"
	OccurrenceFile  = "occurrence.csv"
	MeasurementFile = "emof.csv"
)

var eventHeader = []string{
	"eventDate", "decimalLatitude", "decimalLongitude",
	"coordinateUncertaintyInMeters", "minimumDepthInMeters",
	"maximumDepthInMeters", "eventID", "geodeticDatum", "samplingEffort",
}

var occurrenceHeader = []string{
	"eventID", "occurrenceID", "basisOfRecord", "scientificName",
	"occurrenceStatus", "AphiaID", "url", "authority", "status",
	"unacceptreason", "taxonRankID", "rank", "valid_AphiaID", "valid_name",
	"valid_authority", "parentNameUsageID", "kingdom", "phylum", "class",
	"order", "family", "genus", "citation", "lsid", "isMarine",
	"match_type", "modified",
}

var measurementHeader = []string{
	"eventID", "measurementDeterminedDate", "measurementType",
	"measurementValue", "measurementTypeID", "measurementUnit",
	"measurementUnitID", "measurementAccuracy", "measurementMethod",
}

// writeCSV writes a header and rows to path, creating the directory if
// needed.
func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Newf("failed to create output directory: %w", err).
				Category(errors.CategoryFileIO).
				Component("dwc").
				FileContext(path, 0).
				Build()
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Newf("failed to create output table: %w", err).
			Category(errors.CategoryFileIO).
			Component("dwc").
			FileContext(path, 0).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return errors.Newf("failed to write CSV header: %w", err).
			Category(errors.CategoryFileIO).
			Component("dwc").
			FileContext(path, 1).
			Build()
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return errors.Newf("failed to write CSV row: %w", err).
				Category(errors.CategoryFileIO).
				Component("dwc").
				FileContext(path, 0).
				Build()
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Newf("failed to flush CSV output: %w", err).
			Category(errors.CategoryFileIO).
			Component("dwc").
			FileContext(path, 0).
			Build()
	}

	return nil
}

// WriteEvents writes the Event table to dir.
func WriteEvents(dir string, events []Event) error {
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{
			e.EventDate, e.DecimalLatitude, e.DecimalLongitude,
			e.CoordinateUncertaintyInMeters, e.MinimumDepthInMeters,
			e.MaximumDepthInMeters, e.EventID, e.GeodeticDatum,
			e.SamplingEffort,
		}
	}
	return writeCSV(filepath.Join(dir, EventFile), eventHeader, rows)
}

// WriteOccurrences writes the Occurrence table to dir.
func WriteOccurrences(dir string, occurrences []Occurrence) error {
	rows := make([][]string, len(occurrences))
	for i, o := range occurrences {
		rows[i] = []string{
			o.EventID, o.OccurrenceID, o.BasisOfRecord, o.ScientificName,
			o.OccurrenceStatus, o.AphiaID, o.URL, o.Authority, o.Status,
			o.Unacceptreason, o.TaxonRankID, o.Rank, o.ValidAphiaID,
			o.ValidName, o.ValidAuthority, o.ParentNameUsageID, o.Kingdom,
			o.Phylum, o.Class, o.Order, o.Family, o.Genus, o.Citation,
			o.Lsid, o.IsMarine, o.MatchType, o.Modified,
		}
	}
	return writeCSV(filepath.Join(dir, OccurrenceFile), occurrenceHeader, rows)
}

// WriteMeasurements writes the eMoF table to dir.
func WriteMeasurements(dir string, measurements []MeasurementOrFact) error {
	rows := make([][]string, len(measurements))
	for i, m := range measurements {
		rows[i] = []string{
			m.EventID, m.MeasurementDeterminedDate, m.MeasurementType,
			m.MeasurementValue, m.MeasurementTypeID, m.MeasurementUnit,
			m.MeasurementUnitID, m.MeasurementAccuracy, m.MeasurementMethod,
		}
	}
	return writeCSV(filepath.Join(dir, MeasurementFile), measurementHeader, rows)
}
