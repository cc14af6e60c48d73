// Package dwc projects merged observations into the three OBIS-ENV-DATA
// output tables: Event, Occurrence and Extended Measurement-or-Fact.
package dwc

// Fixed values attached during projection.
const (
	// GeodeticDatum is the coordinate reference system of the site positions.
	GeodeticDatum = "EPSG:4326"

	// SamplingEffort describes the fixed survey design.
	SamplingEffort = "30 m transect sampled at 5 m intervals"

	// CoordinateUncertainty reflects handheld-GPS site marking.
	CoordinateUncertainty = "10"

	// BasisOfRecord labels every occurrence as a diver observation.
	BasisOfRecord = "HumanObservation"

	// DefaultScientificName is the species every occurrence resolves to.
	DefaultScientificName = "Zostera marina"

	// OccurrenceStatus: the surveys only record where eelgrass was found.
	OccurrenceStatus = "present"
)

// Event is one sampling occasion at a place and time: one row per eventID.
type Event struct {
	EventDate                     string
	DecimalLatitude               string
	DecimalLongitude              string
	CoordinateUncertaintyInMeters string
	MinimumDepthInMeters          string
	MaximumDepthInMeters          string
	EventID                       string
	GeodeticDatum                 string
	SamplingEffort                string
}

// Occurrence records the organism's presence at an event, with the taxonomic
// hierarchy broadcast from the single registry record.
type Occurrence struct {
	EventID          string
	OccurrenceID     string
	BasisOfRecord    string
	ScientificName   string
	OccurrenceStatus string

	AphiaID           string
	URL               string
	Authority         string
	Status            string
	Unacceptreason    string
	TaxonRankID       string
	Rank              string
	ValidAphiaID      string
	ValidName         string
	ValidAuthority    string
	ParentNameUsageID string
	Kingdom           string
	Phylum            string
	Class             string
	Order             string
	Family            string
	Genus             string
	Citation          string
	Lsid              string
	IsMarine          string
	MatchType         string
	Modified          string
}

// MeasurementOrFact is one measured quantity at one event, long format.
type MeasurementOrFact struct {
	EventID                   string
	MeasurementDeterminedDate string
	MeasurementType           string
	MeasurementValue          string
	MeasurementTypeID         string
	MeasurementUnit           string
	MeasurementUnitID         string
	MeasurementAccuracy       string
	MeasurementMethod         string
}
