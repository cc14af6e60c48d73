// Package transect defines the transect distance vocabularies of the two
// surveys and maps the habitat survey's range-valued sections onto the
// density survey's discrete points.
package transect

import (
	"log/slog"

	"github.com/bbest/seagrass-dwc/internal/errors"
	"github.com/bbest/seagrass-dwc/internal/survey"
)

// LengthMeters is the fixed transect length.
const LengthMeters = 30

// pointOrder enumerates the density survey's point vocabulary: one discrete
// point every 5 metres along the transect.
var pointOrder = map[string]int{
	"0":  0,
	"5":  1,
	"10": 2,
	"15": 3,
	"20": 4,
	"25": 5,
	"30": 6,
}

// collapse maps every habitat section label to the point at its far end.
// Fine-grained half-offset sections, used in some survey years, collapse to
// the same target point as their coarse counterparts.
var collapse = map[string]string{
	"0 - 5":   "5",
	"5 - 10":  "10",
	"10 - 15": "15",
	"15 - 20": "20",
	"20 - 25": "25",
	"25 - 30": "30",

	"2.5 - 7.5":   "5",
	"7.5 - 12.5":  "10",
	"12.5 - 17.5": "15",
	"17.5 - 22.5": "20",
	"22.5 - 27.5": "25",
	"27.5 - 30":   "30",
}

// startSections are the labels denoting the transect's starting section.
// The 0 m point has no preceding section to draw from, so these sections are
// duplicated onto point "0" rather than only collapsed forward.
var startSections = map[string]struct{}{
	"0 - 5":   {},
	"0 - 2.5": {},
}

// fineStartSection is dropped once its content has been captured by the
// duplicated 0-point record, to avoid double counting.
const fineStartSection = "0 - 2.5"

// IsPoint reports whether label is in the density survey's point vocabulary.
func IsPoint(label string) bool {
	_, ok := pointOrder[label]
	return ok
}

// PointOrder returns the position of a point label along the transect, or -1
// for labels outside the vocabulary. Used for deterministic output ordering.
func PointOrder(label string) int {
	order, ok := pointOrder[label]
	if !ok {
		return -1
	}
	return order
}

// ValidatePoints checks that every density record's transect distance is in
// the point vocabulary. An unknown label is a fatal data-integrity error
// since identifier derivation depends on it.
func ValidatePoints(records []survey.DensityRecord, path string) error {
	for i := range records {
		if !IsPoint(records[i].TransectDist) {
			return errors.Newf("density record has transect distance %q outside the point vocabulary", records[i].TransectDist).
				Category(errors.CategoryValidation).
				Component("transect").
				Context("site_id", records[i].SiteID).
				Context("date", records[i].Date).
				FileContext(path, i+2).
				Build()
		}
	}
	return nil
}

// MapBuckets converts each habitat record's range-valued distance into the
// density survey's point vocabulary:
//
//  1. Starting sections emit a duplicate record relabeled to point "0".
//  2. Every known section collapses to the point at its far end.
//  3. The redundant fine-grained starting section is dropped after its
//     0-point duplicate is emitted.
//  4. Labels in neither table are dropped; this mirrors the upstream
//     dataset's behavior and is logged as a known-risky silent drop.
//
// The input is never mutated; output cardinality is input plus one per
// starting section, minus dropped rows.
func MapBuckets(records []survey.HabitatRecord, log *slog.Logger) []survey.HabitatRecord {
	out := make([]survey.HabitatRecord, 0, len(records)+len(records)/4)

	for i := range records {
		r := records[i]
		label := r.TransectDist

		if _, ok := startSections[label]; ok {
			dup := r
			dup.TransectDist = "0"
			out = append(out, dup)

			if label == fineStartSection {
				continue
			}
		}

		point, ok := collapse[label]
		if !ok {
			if log != nil {
				log.Warn("dropping habitat record with unmapped transect section",
					"label", label,
					"site_id", r.SiteID,
					"date", r.Date)
			}
			continue
		}

		mapped := r
		mapped.TransectDist = point
		out = append(out, mapped)
	}

	return out
}
