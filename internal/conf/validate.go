package conf

import (
	"fmt"

	"github.com/bbest/seagrass-dwc/internal/errors"
)

// ValidateSettings checks the loaded settings for values the pipeline cannot
// run with. Paths are not checked for existence here; the readers surface
// missing files with row-level context.
func ValidateSettings(settings *Settings) error {
	var validationErrors []error

	if settings.Input.Density == "" {
		validationErrors = append(validationErrors, fmt.Errorf("input.density must be set"))
	}
	if settings.Input.Habitat == "" {
		validationErrors = append(validationErrors, fmt.Errorf("input.habitat must be set"))
	}
	if settings.Input.Coordinates == "" {
		validationErrors = append(validationErrors, fmt.Errorf("input.coordinates must be set"))
	}
	if settings.Output.Dir == "" {
		validationErrors = append(validationErrors, fmt.Errorf("output.dir must be set"))
	}
	if settings.Worms.BaseURL == "" {
		validationErrors = append(validationErrors, fmt.Errorf("worms.baseurl must be set"))
	}
	if settings.Worms.AphiaID <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("worms.aphiaid must be a positive taxon identifier, got %d", settings.Worms.AphiaID))
	}
	if settings.Worms.Timeout <= 0 {
		validationErrors = append(validationErrors, fmt.Errorf("worms.timeout must be positive, got %d", settings.Worms.Timeout))
	}

	if len(validationErrors) > 0 {
		return errors.New(errors.Join(validationErrors...)).
			Category(errors.CategoryConfiguration).
			Component("conf").
			Build()
	}

	return nil
}
