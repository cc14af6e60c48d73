package dwc

// The nine measurement types emitted per merged observation, in output order.
const (
	TypeBedAbund                 = "BedAbund"
	TypeCanopyHeight             = "CanopyHeight"
	TypeFlowerAbund              = "FlowerAbund"
	TypeSubstratePrimary         = "SubstratePrimary"
	TypeSubstrateSecondary       = "SubstrateSecondary"
	TypeBedPatchiness            = "BedPatchiness"
	TypeAdjacentHabitatPrimary   = "AdjacentHabitatPrimary"
	TypeAdjacentHabitatSecondary = "AdjacentHabitatSecondary"
	TypeVegetation               = "Vegetation"
)

// MeasurementTypes lists the emitted types in output order.
var MeasurementTypes = []string{
	TypeBedAbund,
	TypeCanopyHeight,
	TypeFlowerAbund,
	TypeSubstratePrimary,
	TypeSubstrateSecondary,
	TypeBedPatchiness,
	TypeAdjacentHabitatPrimary,
	TypeAdjacentHabitatSecondary,
	TypeVegetation,
}

// Term is the vocabulary annotation attached to one measurement type.
type Term struct {
	TypeID   string // stable vocabulary term identifier URL
	Unit     string
	UnitID   string
	Accuracy string // numeric accuracy, only defined for canopy height
	Method   string
}

// vocabulary maps measurementType to its NERC vocabulary annotation.
// Unmatched types receive the zero Term rather than failing.
var vocabulary = map[string]Term{
	TypeBedAbund: {
		TypeID: "http://vocab.nerc.ac.uk/collection/P01/current/SDBIOL02/",
		Unit:   "Number per square metre",
		UnitID: "http://vocab.nerc.ac.uk/collection/P06/current/UPMS/",
		Method: "Shoot count within a 25 x 50 cm quadrat, scaled to one square metre",
	},
	TypeCanopyHeight: {
		TypeID:   "http://vocab.nerc.ac.uk/collection/P01/current/OBSMAXLX/",
		Unit:     "Centimetres",
		UnitID:   "http://vocab.nerc.ac.uk/collection/P06/current/ULCM/",
		Accuracy: "0.5",
		Method:   "Length of the longest blade from five shoots per quadrat",
	},
	TypeFlowerAbund: {
		TypeID: "http://vocab.nerc.ac.uk/collection/P01/current/SDBIOL01/",
		Unit:   "Number per square metre",
		UnitID: "http://vocab.nerc.ac.uk/collection/P06/current/UPMS/",
		Method: "Flowering shoot count within the quadrat, scaled to one square metre",
	},
	TypeSubstratePrimary: {
		TypeID: "http://vocab.nerc.ac.uk/collection/P01/current/SBDSCRPT/",
		Method: "Dominant substrate class, visual estimate over the transect section",
	},
	TypeSubstrateSecondary: {
		TypeID: "http://vocab.nerc.ac.uk/collection/P01/current/SBDSCRPT/",
		Method: "Second most dominant substrate class, visual estimate over the transect section",
	},
	TypeBedPatchiness: {
		Method: "Visual estimate of seagrass bed continuity within the transect section",
	},
	TypeAdjacentHabitatPrimary: {
		Method: "Primary habitat class bordering the transect section",
	},
	TypeAdjacentHabitatSecondary: {
		Method: "Secondary habitat class bordering the transect section",
	},
	TypeVegetation: {
		Method: "Non-eelgrass vegetation observed within the transect section",
	},
}

// Annotate returns the vocabulary annotation for a measurement type. Unknown
// types get the zero Term: all-null annotation fields, never an error.
func Annotate(measurementType string) Term {
	return vocabulary[measurementType]
}
