// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "seagrass-dwc")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/seagrass-dwc.log")

	viper.SetDefault("input.density", "data/density.csv")
	viper.SetDefault("input.habitat", "data/habitat.csv")
	viper.SetDefault("input.coordinates", "data/coordinates.csv")

	viper.SetDefault("output.dir", "output")

	viper.SetDefault("worms.baseurl", "https://www.marinespecies.org/rest")
	// Zostera marina, the eelgrass species every occurrence resolves to
	viper.SetDefault("worms.aphiaid", 145795)
	viper.SetDefault("worms.timeout", 30)
	viper.SetDefault("worms.cachettl", 24)
	viper.SetDefault("worms.ratelimitms", 100)
}
