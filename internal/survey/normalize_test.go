package survey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	parsed, err := parseDate("2020-07-01", "density.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 7, 1, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = parseDate(" 2020-07-01 ", "density.csv", 2)
	require.NoError(t, err)
	assert.Equal(t, "2020-07-01", parsed.Format(dateLayout))
}

func TestParseDateInvalidIsFatal(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "July 1 2020", "2020/07/01", "2020-13-01"} {
		_, err := parseDate(value, "density.csv", 3)
		require.Error(t, err, "value %q", value)
		assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{"t separated", "2020-07-01T09:15:00", timePtr(2020, 7, 1, 9, 15)},
		{"space separated", "2020-07-01 09:15:00", timePtr(2020, 7, 1, 9, 15)},
		{"empty", "", nil},
		{"garbage", "morning dive", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseTimestamp(tt.value, nil)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got))
		})
	}
}

func timePtr(year int, month time.Month, day, hour, min int) *time.Time {
	t := time.Date(year, month, day, hour, min, 0, 0, time.UTC)
	return &t
}

func TestParseFloat(t *testing.T) {
	t.Parallel()

	got := parseFloat("3.2", nil)
	require.NotNil(t, got)
	assert.InDelta(t, 3.2, *got, 1e-9)

	// absent and unparseable values are nil, never zero
	assert.Nil(t, parseFloat("", nil))
	assert.Nil(t, parseFloat("  ", nil))
	assert.Nil(t, parseFloat("n/a", nil))

	zero := parseFloat("0", nil)
	require.NotNil(t, zero)
	assert.Zero(t, *zero)
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"true", "TRUE", "t", "1", "yes", "Y"} {
		assert.True(t, parseBool(value), "value %q", value)
	}
	for _, value := range []string{"", "false", "f", "0", "no", "collected"} {
		assert.False(t, parseBool(value), "value %q", value)
	}
}

func TestPadSiteID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"42", "00042"},
		{"00042", "00042"},
		{"123456", "123456"},
		{"S1", "S1"},
		{"choked_south", "choked_south"},
		{"", ""},
		{" 7 ", "00007"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, padSiteID(tt.in), "input %q", tt.in)
	}
}
