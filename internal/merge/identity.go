package merge

import (
	"log/slog"
	"strings"

	"github.com/bbest/seagrass-dwc/internal/survey"
)

// idDelimiter joins the components of the surrogate identifiers. The
// identifiers are human-auditable and never regenerated for an existing
// (date, site, distance) combination: external consumers cite them across
// dataset versions.
const idDelimiter = ":"

// EventID derives the deterministic event identifier from the merge key.
// Project and Survey are part of the merge key but not of the identifier, so
// distinctness of eventIDs is narrower than distinctness of merge keys; see
// AssignIdentities.
func EventID(o *Observation) string {
	return strings.Join([]string{
		o.Date,
		o.Organization,
		o.WorkArea,
		o.SiteID,
		o.TransectDist,
	}, idDelimiter)
}

// OccurrenceID extends the event identifier with the transect distance and
// the natural sample identifier. When no physical sample was collected, all
// observations at a point share one occurrenceID distinguished only by the
// NA sentinel; no sub-sample identity exists to disambiguate further.
func OccurrenceID(o *Observation) string {
	return strings.Join([]string{
		EventID(o),
		o.TransectDist,
		o.SampleID,
	}, idDelimiter)
}

// AssignIdentities stamps every observation with its surrogate identifiers.
// Two distinct merge keys deriving the same eventID break the key-to-event
// 1:1 invariant (downstream projection keeps only the first row per
// identifier), so a collision is logged at WARN.
func AssignIdentities(obs []Observation, log *slog.Logger) {
	seen := make(map[string]survey.Key, len(obs))

	for i := range obs {
		obs[i].EventID = EventID(&obs[i])
		obs[i].OccurrenceID = OccurrenceID(&obs[i])

		if prev, ok := seen[obs[i].EventID]; ok {
			if prev != obs[i].Key && log != nil {
				log.Warn("distinct merge keys derive the same eventID",
					"event_id", obs[i].EventID,
					"project", obs[i].Project,
					"survey", obs[i].Survey,
					"first_project", prev.Project,
					"first_survey", prev.Survey)
			}
			continue
		}
		seen[obs[i].EventID] = obs[i].Key
	}
}
