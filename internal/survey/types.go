// Package survey defines the normalized records of the two field surveys and
// the site coordinate lookup, and reads them from their CSV sources.
package survey

import "time"

// SampleAbsent is the sentinel used when no physical sample was collected at
// a point, so no natural sample identifier exists.
const SampleAbsent = "NA"

// Key identifies one sampling event shared by both surveys. Both surveys
// carry the same organizational columns; after bucket mapping the habitat
// side's transect distance is expressed in the density survey's point
// vocabulary, making the key directly comparable.
type Key struct {
	Organization string
	WorkArea     string
	Project      string
	Survey       string
	SiteID       string
	Date         string // ISO 8601 calendar date
	TransectDist string // categorical distance label
}

// DensityRecord is one row of the point-based density survey: a discrete
// point along the 30 m transect. Optional numerics are nil when the source
// field was empty or unparseable, never zero.
type DensityRecord struct {
	Key

	Depth           *float64
	CollectedStart  *time.Time
	CollectedEnd    *time.Time
	DensityShoots   *float64 // raw shoot count in the quadrat
	DensityMsq      *float64 // shoots per square metre
	CanopyHeight    *float64 // centimetres
	FloweringShoots *float64 // flowering shoots per square metre
	SampleCollected bool
	SampleID        string // natural identifier, only meaningful when SampleCollected
	DiveSupervisor  string
	SamplingBout    string
}

// HabitatRecord is one row of the range-based habitat survey: a contiguous
// transect section such as "0 - 5". TransectDist holds the range label until
// the bucket mapper rewrites it to a point label.
type HabitatRecord struct {
	Key

	Depth            *float64
	CollectedStart   *time.Time
	CollectedEnd     *time.Time
	Substrate        string // up to two comma separated categories, e.g. "Sand,Shell"
	Patchiness       string
	AdjacentHabitat1 string
	AdjacentHabitat2 string
	Vegetation       string
	SampleID         string
	DiveSupervisor   string
	SamplingBout     string
}

// CoordinateRecord maps a site identifier to its position. Static reference
// table, read once.
type CoordinateRecord struct {
	SiteID    string
	Latitude  float64
	Longitude float64
}
