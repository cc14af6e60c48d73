package dwc

import (
	"strconv"
	"strings"

	"github.com/bbest/seagrass-dwc/internal/merge"
	"github.com/bbest/seagrass-dwc/internal/worms"
)

// formatFloat renders an optional numeric as its shortest exact decimal
// form, or "" when absent.
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

// ProjectEvents builds the Event table: one row per distinct eventID, in
// observation order.
func ProjectEvents(obs []merge.Observation) []Event {
	seen := make(map[string]struct{}, len(obs))
	events := make([]Event, 0, len(obs))

	for i := range obs {
		o := &obs[i]
		if _, ok := seen[o.EventID]; ok {
			continue
		}
		seen[o.EventID] = struct{}{}

		depth := formatFloat(o.Depth)
		events = append(events, Event{
			EventDate:                     o.Date,
			DecimalLatitude:               formatFloat(o.Latitude),
			DecimalLongitude:              formatFloat(o.Longitude),
			CoordinateUncertaintyInMeters: CoordinateUncertainty,
			MinimumDepthInMeters:          depth,
			MaximumDepthInMeters:          depth,
			EventID:                       o.EventID,
			GeodeticDatum:                 GeodeticDatum,
			SamplingEffort:                SamplingEffort,
		})
	}

	return events
}

// ProjectOccurrences builds the Occurrence table: one row per distinct
// (eventID, occurrenceID), with the single registry record broadcast onto
// every row.
func ProjectOccurrences(obs []merge.Observation, taxon *worms.AphiaRecord) []Occurrence {
	type pair struct{ event, occurrence string }
	seen := make(map[pair]struct{}, len(obs))
	occurrences := make([]Occurrence, 0, len(obs))

	scientificName := DefaultScientificName
	if taxon.ScientificName != "" {
		scientificName = taxon.ScientificName
	}

	for i := range obs {
		o := &obs[i]
		p := pair{o.EventID, o.OccurrenceID}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		occurrences = append(occurrences, Occurrence{
			EventID:          o.EventID,
			OccurrenceID:     o.OccurrenceID,
			BasisOfRecord:    BasisOfRecord,
			ScientificName:   scientificName,
			OccurrenceStatus: OccurrenceStatus,

			AphiaID:           formatInt(taxon.AphiaID),
			URL:               taxon.URL,
			Authority:         taxon.Authority,
			Status:            taxon.Status,
			Unacceptreason:    taxon.Unacceptreason,
			TaxonRankID:       formatInt(taxon.TaxonRankID),
			Rank:              taxon.Rank,
			ValidAphiaID:      formatInt(taxon.ValidAphiaID),
			ValidName:         taxon.ValidName,
			ValidAuthority:    taxon.ValidAuthority,
			ParentNameUsageID: formatInt(taxon.ParentNameUsageID),
			Kingdom:           taxon.Kingdom,
			Phylum:            taxon.Phylum,
			Class:             taxon.Class,
			Order:             taxon.Order,
			Family:            taxon.Family,
			Genus:             taxon.Genus,
			Citation:          taxon.Citation,
			Lsid:              taxon.Lsid,
			IsMarine:          formatInt(taxon.IsMarine),
			MatchType:         taxon.MatchType,
			Modified:          taxon.Modified,
		})
	}

	return occurrences
}

// splitSubstrate splits the two-valued substrate field on its comma into
// primary and secondary categories.
func splitSubstrate(substrate string) (primary, secondary string) {
	if substrate == "" {
		return "", ""
	}
	parts := strings.SplitN(substrate, ",", 2)
	primary = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		secondary = strings.TrimSpace(parts[1])
	}
	return primary, secondary
}

// measurementValues maps each observation to its nine measurement values in
// output order. Absent measurements stay "", and still become rows.
func measurementValues(o *merge.Observation) map[string]string {
	values := map[string]string{}

	if o.Density != nil {
		values[TypeBedAbund] = formatFloat(o.Density.DensityMsq)
		values[TypeCanopyHeight] = formatFloat(o.Density.CanopyHeight)
		values[TypeFlowerAbund] = formatFloat(o.Density.FloweringShoots)
	}

	if o.Habitat != nil {
		primary, secondary := splitSubstrate(o.Habitat.Substrate)
		values[TypeSubstratePrimary] = primary
		values[TypeSubstrateSecondary] = secondary
		values[TypeBedPatchiness] = o.Habitat.Patchiness
		values[TypeAdjacentHabitatPrimary] = o.Habitat.AdjacentHabitat1
		values[TypeAdjacentHabitatSecondary] = o.Habitat.AdjacentHabitat2
		values[TypeVegetation] = o.Habitat.Vegetation
	}

	return values
}

// ProjectMeasurements builds the eMoF table: the wide-to-long reshape of the
// nine measurement columns, one row per event and measurement type, each
// annotated from the vocabulary. For N observations the table has exactly
// 9*N rows, null-valued measurements included.
func ProjectMeasurements(obs []merge.Observation) []MeasurementOrFact {
	rows := make([]MeasurementOrFact, 0, len(obs)*len(MeasurementTypes))

	for i := range obs {
		o := &obs[i]
		values := measurementValues(o)

		for _, mt := range MeasurementTypes {
			term := Annotate(mt)
			rows = append(rows, MeasurementOrFact{
				EventID:                   o.EventID,
				MeasurementDeterminedDate: o.Date,
				MeasurementType:           mt,
				MeasurementValue:          values[mt],
				MeasurementTypeID:         term.TypeID,
				MeasurementUnit:           term.Unit,
				MeasurementUnitID:         term.UnitID,
				MeasurementAccuracy:       term.Accuracy,
				MeasurementMethod:         term.Method,
			})
		}
	}

	return rows
}
