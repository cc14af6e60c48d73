package merge

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbest/seagrass-dwc/internal/survey"
)

func TestEventIDComposition(t *testing.T) {
	t.Parallel()

	o := &Observation{Key: keyAt("10")}
	assert.Equal(t, "2020-07-01:HAKAI:CALVERT:S1:10", EventID(o))
}

func TestOccurrenceIDWithoutSample(t *testing.T) {
	t.Parallel()

	o := &Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	assert.Equal(t, "2020-07-01:HAKAI:CALVERT:S1:10:10:NA", OccurrenceID(o))
}

func TestOccurrenceIDWithSample(t *testing.T) {
	t.Parallel()

	o := &Observation{Key: keyAt("10"), SampleID: "HK-0042"}
	assert.Equal(t, "2020-07-01:HAKAI:CALVERT:S1:10:10:HK-0042", OccurrenceID(o))
}

func TestIdentifiersAreStableAndCollisionFree(t *testing.T) {
	t.Parallel()

	a := &Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	b := &Observation{Key: keyAt("15"), SampleID: survey.SampleAbsent}

	// different (date, site, distance) tuples differ
	assert.NotEqual(t, OccurrenceID(a), OccurrenceID(b))

	// same tuple and no physical sample: equal, run over run
	a2 := &Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	assert.Equal(t, OccurrenceID(a), OccurrenceID(a2))

	c := &Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	c.Date = "2020-07-02"
	assert.NotEqual(t, OccurrenceID(a), OccurrenceID(c))

	d := &Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	d.SiteID = "S2"
	assert.NotEqual(t, OccurrenceID(a), OccurrenceID(d))
}

func TestAssignIdentities(t *testing.T) {
	t.Parallel()

	obs := []Observation{
		{Key: keyAt("0"), SampleID: survey.SampleAbsent},
		{Key: keyAt("5"), SampleID: "HK-0001"},
	}
	AssignIdentities(obs, nil)

	require.Equal(t, "2020-07-01:HAKAI:CALVERT:S1:0", obs[0].EventID)
	require.Equal(t, "2020-07-01:HAKAI:CALVERT:S1:0:0:NA", obs[0].OccurrenceID)
	require.Equal(t, "2020-07-01:HAKAI:CALVERT:S1:5:5:HK-0001", obs[1].OccurrenceID)
}

func TestAssignIdentitiesWarnsOnEventIDCollision(t *testing.T) {
	t.Parallel()

	// same (date, organization, work area, site, distance) but a different
	// project: the merge keys are distinct, the derived eventIDs are not
	a := Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	b := Observation{Key: keyAt("10"), SampleID: survey.SampleAbsent}
	b.Project = "KELP"

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	obs := []Observation{a, b}
	AssignIdentities(obs, log)

	assert.Equal(t, obs[0].EventID, obs[1].EventID)
	assert.Contains(t, buf.String(), "distinct merge keys derive the same eventID")
	assert.Contains(t, buf.String(), "KELP")
}

func TestAssignIdentitiesNoWarnOnDistinctEventIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	obs := []Observation{
		{Key: keyAt("10"), SampleID: survey.SampleAbsent},
		{Key: keyAt("15"), SampleID: survey.SampleAbsent},
	}
	AssignIdentities(obs, log)

	assert.Empty(t, buf.String())
}
