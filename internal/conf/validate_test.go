package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

func validSettings() *Settings {
	return &Settings{
		Input: InputSettings{
			Density:     "data/density.csv",
			Habitat:     "data/habitat.csv",
			Coordinates: "data/coordinates.csv",
		},
		Output: OutputSettings{Dir: "output"},
		Worms: WormsSettings{
			BaseURL:     "https://www.marinespecies.org/rest",
			AphiaID:     145795,
			Timeout:     30,
			CacheTTL:    24,
			RateLimitMS: 100,
		},
	}
}

func TestValidateSettingsOK(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsMissingInputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing density path", func(s *Settings) { s.Input.Density = "" }},
		{"missing habitat path", func(s *Settings) { s.Input.Habitat = "" }},
		{"missing coordinates path", func(s *Settings) { s.Input.Coordinates = "" }},
		{"missing output dir", func(s *Settings) { s.Output.Dir = "" }},
		{"missing worms base url", func(s *Settings) { s.Worms.BaseURL = "" }},
		{"zero aphia id", func(s *Settings) { s.Worms.AphiaID = 0 }},
		{"negative timeout", func(s *Settings) { s.Worms.Timeout = -1 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
		})
	}
}
