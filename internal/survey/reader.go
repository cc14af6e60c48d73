package survey

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

// columns maps lower-cased header names to their position in the CSV.
type columns map[string]int

// get returns the trimmed cell for the named column, or "" when the column
// is not present in the file.
func (c columns) get(record []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// readTable opens a CSV file and calls fn for every data row with the header
// index and 1-based row number (header is row 1).
func readTable(path string, fn func(cols columns, record []string, row int) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Newf("failed to open survey table: %w", err).
			Category(errors.CategoryFileIO).
			Component("survey").
			FileContext(path, 0).
			Build()
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return errors.Newf("failed to read CSV header: %w", err).
			Category(errors.CategoryFileParsing).
			Component("survey").
			FileContext(path, 1).
			Build()
	}

	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return errors.Newf("failed to read CSV row: %w", err).
				Category(errors.CategoryFileParsing).
				Component("survey").
				FileContext(path, row).
				Build()
		}
		if err := fn(cols, record, row); err != nil {
			return err
		}
	}

	return nil
}

// readKey extracts the shared organizational key columns from a row.
func readKey(cols columns, record []string, path string, row int) (Key, error) {
	date := cols.get(record, "date")
	parsed, err := parseDate(date, path, row)
	if err != nil {
		return Key{}, err
	}

	return Key{
		Organization: cols.get(record, "organization"),
		WorkArea:     cols.get(record, "work_area"),
		Project:      cols.get(record, "project"),
		Survey:       cols.get(record, "survey"),
		SiteID:       padSiteID(cols.get(record, "site_id")),
		Date:         parsed.Format(dateLayout),
		TransectDist: cols.get(record, "transect_dist"),
	}, nil
}

// ReadDensity reads and normalizes the point-based density survey table.
// Cardinality is preserved: no rows are dropped or added.
func ReadDensity(path string, log *slog.Logger) ([]DensityRecord, error) {
	var records []DensityRecord

	err := readTable(path, func(cols columns, record []string, row int) error {
		key, err := readKey(cols, record, path, row)
		if err != nil {
			return err
		}

		records = append(records, DensityRecord{
			Key:             key,
			Depth:           parseFloat(cols.get(record, "depth_m"), log),
			CollectedStart:  parseTimestamp(cols.get(record, "collected_start"), log),
			CollectedEnd:    parseTimestamp(cols.get(record, "collected_end"), log),
			DensityShoots:   parseFloat(cols.get(record, "density_shoots"), log),
			DensityMsq:      parseFloat(cols.get(record, "density_shoots_msq"), log),
			CanopyHeight:    parseFloat(cols.get(record, "canopy_height_cm"), log),
			FloweringShoots: parseFloat(cols.get(record, "flowering_shoots_msq"), log),
			SampleCollected: parseBool(cols.get(record, "sample_collected")),
			SampleID:        cols.get(record, "hakai_id"),
			DiveSupervisor:  cols.get(record, "dive_supervisor"),
			SamplingBout:    cols.get(record, "sampling_bout"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ReadHabitat reads and normalizes the range-based habitat survey table.
// The transect distance stays a range label until the bucket mapper rewrites it.
func ReadHabitat(path string, log *slog.Logger) ([]HabitatRecord, error) {
	var records []HabitatRecord

	err := readTable(path, func(cols columns, record []string, row int) error {
		key, err := readKey(cols, record, path, row)
		if err != nil {
			return err
		}

		records = append(records, HabitatRecord{
			Key:              key,
			Depth:            parseFloat(cols.get(record, "depth_m"), log),
			CollectedStart:   parseTimestamp(cols.get(record, "collected_start"), log),
			CollectedEnd:     parseTimestamp(cols.get(record, "collected_end"), log),
			Substrate:        cols.get(record, "substrate"),
			Patchiness:       cols.get(record, "patchiness"),
			AdjacentHabitat1: cols.get(record, "adjacent_habitat_1"),
			AdjacentHabitat2: cols.get(record, "adjacent_habitat_2"),
			Vegetation:       cols.get(record, "vegetation"),
			SampleID:         cols.get(record, "hakai_id"),
			DiveSupervisor:   cols.get(record, "dive_supervisor"),
			SamplingBout:     cols.get(record, "sampling_bout"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ReadCoordinates reads the site coordinate lookup table into a map keyed by
// padded site identifier. Rows with unparseable coordinates are skipped with
// a warning; coordinates are supplementary metadata, not a join key.
func ReadCoordinates(path string, log *slog.Logger) (map[string]CoordinateRecord, error) {
	coords := make(map[string]CoordinateRecord)

	err := readTable(path, func(cols columns, record []string, row int) error {
		siteID := padSiteID(cols.get(record, "site_id"))

		lat, latErr := strconv.ParseFloat(cols.get(record, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(cols.get(record, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			if log != nil {
				log.Warn("skipping coordinate row with unparseable position",
					"site_id", siteID,
					"row", row)
			}
			return nil
		}

		coords[siteID] = CoordinateRecord{
			SiteID:    siteID,
			Latitude:  lat,
			Longitude: lon,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return coords, nil
}
