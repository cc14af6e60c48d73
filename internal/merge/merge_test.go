package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbest/seagrass-dwc/internal/survey"
)

func f(v float64) *float64 { return &v }

func keyAt(dist string) survey.Key {
	return survey.Key{
		Organization: "HAKAI",
		WorkArea:     "CALVERT",
		Project:      "SEAGRASS",
		Survey:       "CHOKED",
		SiteID:       "S1",
		Date:         "2020-07-01",
		TransectDist: dist,
	}
}

func densityAt(dist string) survey.DensityRecord {
	return survey.DensityRecord{
		Key:            keyAt(dist),
		Depth:          f(3.2),
		DensityMsq:     f(45),
		DiveSupervisor: "JD",
	}
}

func habitatRecAt(dist string) survey.HabitatRecord {
	return survey.HabitatRecord{
		Key:          keyAt(dist),
		Depth:        f(3.0),
		Substrate:    "Sand,Shell",
		SamplingBout: "2",
	}
}

func siteCoords() map[string]survey.CoordinateRecord {
	return map[string]survey.CoordinateRecord{
		"S1": {SiteID: "S1", Latitude: 51.65, Longitude: -128.12},
	}
}

func TestMergeDensityWinsConflicts(t *testing.T) {
	t.Parallel()

	obs := Merge(
		[]survey.DensityRecord{densityAt("10")},
		[]survey.HabitatRecord{habitatRecAt("10")},
		siteCoords(), nil)

	require.Len(t, obs, 1)
	o := obs[0]

	require.NotNil(t, o.Density)
	require.NotNil(t, o.Habitat)

	// density-side depth wins over the habitat-side 3.0
	require.NotNil(t, o.Depth)
	assert.InDelta(t, 3.2, *o.Depth, 1e-9)

	// density has no sampling bout, habitat fills in
	assert.Equal(t, "2", o.SamplingBout)
	assert.Equal(t, "JD", o.DiveSupervisor)
}

func TestMergeHabitatFillsNilDensityField(t *testing.T) {
	t.Parallel()

	d := densityAt("10")
	d.Depth = nil

	obs := Merge([]survey.DensityRecord{d}, []survey.HabitatRecord{habitatRecAt("10")}, siteCoords(), nil)

	require.Len(t, obs, 1)
	require.NotNil(t, obs[0].Depth)
	assert.InDelta(t, 3.0, *obs[0].Depth, 1e-9)
}

func TestMergeOuterJoin(t *testing.T) {
	t.Parallel()

	obs := Merge(
		[]survey.DensityRecord{densityAt("10")},
		[]survey.HabitatRecord{habitatRecAt("15")},
		siteCoords(), nil)

	require.Len(t, obs, 2)

	// deterministic order by point
	assert.Equal(t, "10", obs[0].TransectDist)
	assert.NotNil(t, obs[0].Density)
	assert.Nil(t, obs[0].Habitat)

	assert.Equal(t, "15", obs[1].TransectDist)
	assert.Nil(t, obs[1].Density)
	assert.NotNil(t, obs[1].Habitat)
}

func TestMergeSampleFlagGatesIdentifier(t *testing.T) {
	t.Parallel()

	// habitat side has an identifier, density flag is false: sentinel wins
	d := densityAt("10")
	d.SampleCollected = false
	d.SampleID = "HK-0042"
	h := habitatRecAt("10")
	h.SampleID = "HK-9999"

	obs := Merge([]survey.DensityRecord{d}, []survey.HabitatRecord{h}, siteCoords(), nil)
	require.Len(t, obs, 1)
	assert.False(t, obs[0].SampleCollected)
	assert.Equal(t, survey.SampleAbsent, obs[0].SampleID)

	// flag true carries the density identifier
	d.SampleCollected = true
	obs = Merge([]survey.DensityRecord{d}, []survey.HabitatRecord{h}, siteCoords(), nil)
	require.Len(t, obs, 1)
	assert.True(t, obs[0].SampleCollected)
	assert.Equal(t, "HK-0042", obs[0].SampleID)
}

func TestMergeMissingCoordinatesSoftDegrade(t *testing.T) {
	t.Parallel()

	obs := Merge([]survey.DensityRecord{densityAt("10")}, nil, map[string]survey.CoordinateRecord{}, nil)

	require.Len(t, obs, 1)
	assert.Nil(t, obs[0].Latitude)
	assert.Nil(t, obs[0].Longitude)
}

func TestMergeDuplicateKeyKeepsFirst(t *testing.T) {
	t.Parallel()

	first := densityAt("10")
	second := densityAt("10")
	second.Depth = f(9.9)

	obs := Merge([]survey.DensityRecord{first, second}, nil, siteCoords(), nil)

	require.Len(t, obs, 1)
	require.NotNil(t, obs[0].Depth)
	assert.InDelta(t, 3.2, *obs[0].Depth, 1e-9)
}

func TestMergeDeterministicOrder(t *testing.T) {
	t.Parallel()

	in := []survey.DensityRecord{densityAt("30"), densityAt("0"), densityAt("10")}
	obs := Merge(in, nil, siteCoords(), nil)

	require.Len(t, obs, 3)
	assert.Equal(t, "0", obs[0].TransectDist)
	assert.Equal(t, "10", obs[1].TransectDist)
	assert.Equal(t, "30", obs[2].TransectDist)
}

func TestConflictTableCoversSharedFields(t *testing.T) {
	t.Parallel()

	want := []string{"depth", "collected_start", "collected_end", "dive_supervisor", "sampling_bout"}
	got := make([]string, len(conflictTable))
	for i := range conflictTable {
		got[i] = conflictTable[i].Field
	}
	assert.Equal(t, want, got)
}

func TestMergeCollectedTimes(t *testing.T) {
	t.Parallel()

	start := time.Date(2020, 7, 1, 9, 30, 0, 0, time.UTC)
	hStart := time.Date(2020, 7, 1, 8, 0, 0, 0, time.UTC)

	d := densityAt("10")
	d.CollectedStart = &start
	h := habitatRecAt("10")
	h.CollectedStart = &hStart
	h.CollectedEnd = &hStart

	obs := Merge([]survey.DensityRecord{d}, []survey.HabitatRecord{h}, siteCoords(), nil)
	require.Len(t, obs, 1)

	require.NotNil(t, obs[0].CollectedStart)
	assert.True(t, obs[0].CollectedStart.Equal(start), "density start wins")

	require.NotNil(t, obs[0].CollectedEnd)
	assert.True(t, obs[0].CollectedEnd.Equal(hStart), "habitat fills absent density end")
}
