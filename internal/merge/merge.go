// Package merge joins the two normalized surveys into event-keyed
// observations and derives their surrogate identifiers.
package merge

import (
	"log/slog"
	"sort"
	"time"

	"github.com/bbest/seagrass-dwc/internal/survey"
	"github.com/bbest/seagrass-dwc/internal/transect"
)

// Observation is the full outer join of one density record, zero or one
// bucket-mapped habitat record, and the matching site coordinates. Exactly
// one eventID and occurrenceID are derived per observation; both are pure
// functions of the key attributes.
type Observation struct {
	survey.Key

	Density *survey.DensityRecord
	Habitat *survey.HabitatRecord

	// Resolved shared fields, density side winning on conflict.
	Depth          *float64
	CollectedStart *time.Time
	CollectedEnd   *time.Time
	DiveSupervisor string
	SamplingBout   string

	SampleCollected bool
	SampleID        string // survey.SampleAbsent when no physical sample exists

	Latitude  *float64
	Longitude *float64

	EventID      string
	OccurrenceID string
}

// preferFloat returns the density-side value, falling back to the habitat
// side only when the density value is absent.
func preferFloat(density, habitat *float64) *float64 {
	if density != nil {
		return density
	}
	return habitat
}

func preferTime(density, habitat *time.Time) *time.Time {
	if density != nil {
		return density
	}
	return habitat
}

func preferString(density, habitat string) string {
	if density != "" {
		return density
	}
	return habitat
}

// conflictTable enumerates the logical attributes both surveys report and
// the resolver applied to each. The density survey is the higher-frequency,
// more authoritative source for point-in-time metadata, so its value wins
// whenever present.
var conflictTable = []struct {
	Field   string
	resolve func(o *Observation, d *survey.DensityRecord, h *survey.HabitatRecord)
}{
	{"depth", func(o *Observation, d *survey.DensityRecord, h *survey.HabitatRecord) {
		o.Depth = preferFloat(depthOf(d), depthOfHabitat(h))
	}},
	{"collected_start", func(o *Observation, d *survey.DensityRecord, h *survey.HabitatRecord) {
		var dv, hv *time.Time
		if d != nil {
			dv = d.CollectedStart
		}
		if h != nil {
			hv = h.CollectedStart
		}
		o.CollectedStart = preferTime(dv, hv)
	}},
	{"collected_end", func(o *Observation, d *survey.DensityRecord, h *survey.HabitatRecord) {
		var dv, hv *time.Time
		if d != nil {
			dv = d.CollectedEnd
		}
		if h != nil {
			hv = h.CollectedEnd
		}
		o.CollectedEnd = preferTime(dv, hv)
	}},
	{"dive_supervisor", func(o *Observation, d *survey.DensityRecord, h *survey.HabitatRecord) {
		var dv, hv string
		if d != nil {
			dv = d.DiveSupervisor
		}
		if h != nil {
			hv = h.DiveSupervisor
		}
		o.DiveSupervisor = preferString(dv, hv)
	}},
	{"sampling_bout", func(o *Observation, d *survey.DensityRecord, h *survey.HabitatRecord) {
		var dv, hv string
		if d != nil {
			dv = d.SamplingBout
		}
		if h != nil {
			hv = h.SamplingBout
		}
		o.SamplingBout = preferString(dv, hv)
	}},
}

func depthOf(d *survey.DensityRecord) *float64 {
	if d == nil {
		return nil
	}
	return d.Depth
}

func depthOfHabitat(h *survey.HabitatRecord) *float64 {
	if h == nil {
		return nil
	}
	return h.Depth
}

// Merge performs the full outer join of density and bucket-mapped habitat
// records on the shared key, resolves field conflicts, and attaches site
// coordinates. A point with no matching section, or vice versa, still
// produces an observation with the missing side's fields absent. Duplicate
// same-side keys keep the first row; the merge key must stay 1:1 with the
// derived eventID.
func Merge(density []survey.DensityRecord, habitat []survey.HabitatRecord, coords map[string]survey.CoordinateRecord, log *slog.Logger) []Observation {
	index := make(map[survey.Key]*Observation, len(density))
	order := make([]*Observation, 0, len(density))

	for i := range density {
		key := density[i].Key
		if existing, ok := index[key]; ok && existing.Density != nil {
			if log != nil {
				log.Warn("duplicate density record for merge key, keeping first",
					"site_id", key.SiteID,
					"date", key.Date,
					"transect_dist", key.TransectDist)
			}
			continue
		}
		obs := &Observation{Key: key, Density: &density[i]}
		index[key] = obs
		order = append(order, obs)
	}

	for i := range habitat {
		key := habitat[i].Key
		obs, ok := index[key]
		if !ok {
			obs = &Observation{Key: key}
			index[key] = obs
			order = append(order, obs)
		}
		if obs.Habitat != nil {
			if log != nil {
				log.Warn("duplicate habitat record for merge key, keeping first",
					"site_id", key.SiteID,
					"date", key.Date,
					"transect_dist", key.TransectDist)
			}
			continue
		}
		obs.Habitat = &habitat[i]
	}

	for _, obs := range order {
		for _, cf := range conflictTable {
			cf.resolve(obs, obs.Density, obs.Habitat)
		}

		// A physical sample exists only when the density side says so; a
		// habitat-side identifier alone does not make one.
		obs.SampleCollected = obs.Density != nil && obs.Density.SampleCollected
		if obs.SampleCollected && obs.Density.SampleID != "" {
			obs.SampleID = obs.Density.SampleID
		} else {
			obs.SampleID = survey.SampleAbsent
		}

		if coord, ok := coords[obs.SiteID]; ok {
			lat, lon := coord.Latitude, coord.Longitude
			obs.Latitude = &lat
			obs.Longitude = &lon
		} else if log != nil {
			log.Warn("site has no coordinates, emitting null position",
				"site_id", obs.SiteID)
		}
	}

	sortObservations(order)

	out := make([]Observation, len(order))
	for i, obs := range order {
		out[i] = *obs
	}
	return out
}

// sortObservations orders observations deterministically so repeated runs
// over identical input produce byte-identical output tables.
func sortObservations(obs []*Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		a, b := obs[i], obs[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.SiteID != b.SiteID {
			return a.SiteID < b.SiteID
		}
		ai, bi := transect.PointOrder(a.TransectDist), transect.PointOrder(b.TransectDist)
		if ai != bi {
			return ai < bi
		}
		if a.Survey != b.Survey {
			return a.Survey < b.Survey
		}
		return a.SamplingBout < b.SamplingBout
	})
}
