package guidelines

import "go-waste-inspector/pkg/models"

// defaultGuidance is returned for labels without a dedicated entry, so a
// lookup never fails even when the vocabulary was loaded from an external
// list with labels this table does not know.
var defaultGuidance = models.Guidance{
	WasteType:  "unknown",
	Recyclable: false,
	Bin:        "general waste",
	Notes:      "Check your local recycling program for this item.",
}

// byLabel maps engine labels to disposal guidance.
var byLabel = map[string]models.Guidance{
	"plastic_bottle": {
		WasteType:   "plastic_bottle",
		Recyclable:  true,
		Bin:         "recycling",
		Preparation: []string{"Rinse the bottle", "Remove the cap", "Crush to save space"},
	},
	"glass_bottle": {
		WasteType:   "glass_bottle",
		Recyclable:  true,
		Bin:         "glass recycling",
		Preparation: []string{"Rinse the bottle", "Remove caps and lids"},
		Notes:       "May need to be sorted by color in some regions.",
	},
	"glass_jar": {
		WasteType:   "glass_jar",
		Recyclable:  true,
		Bin:         "glass recycling",
		Preparation: []string{"Rinse the jar", "Remove the lid"},
	},
	"aluminum_can": {
		WasteType:   "aluminum_can",
		Recyclable:  true,
		Bin:         "recycling",
		Preparation: []string{"Rinse the can"},
	},
	"tin_can": {
		WasteType:   "tin_can",
		Recyclable:  true,
		Bin:         "recycling",
		Preparation: []string{"Rinse the can"},
		Notes:       "Labels can stay on.",
	},
	"paper": {
		WasteType:   "paper",
		Recyclable:  true,
		Bin:         "paper recycling",
		Preparation: []string{"Remove staples, clips, and other non-paper items"},
		Notes:       "Soiled paper belongs in general waste.",
	},
	"cardboard": {
		WasteType:   "cardboard",
		Recyclable:  true,
		Bin:         "paper recycling",
		Preparation: []string{"Flatten boxes", "Remove tape and packing material"},
	},
	"plastic_container": {
		WasteType:   "plastic_container",
		Recyclable:  true,
		Bin:         "recycling",
		Preparation: []string{"Rinse the container", "Remove food residue"},
		Notes:       "Acceptance varies by resin type; check the number on the bottom.",
	},
	"plastic_bag": {
		WasteType:  "plastic_bag",
		Recyclable: false,
		Bin:        "store drop-off",
		Notes:      "Plastic film is not accepted in most curbside programs.",
	},
	"food_waste": {
		WasteType:  "food_waste",
		Recyclable: false,
		Bin:        "organic waste",
		Notes:      "Compost if possible.",
	},
	"styrofoam": {
		WasteType:  "styrofoam",
		Recyclable: false,
		Bin:        "general waste",
		Notes:      "Polystyrene is not accepted in most curbside programs; consider specialized drop-off.",
	},
	"electronic_waste": {
		WasteType:  "electronic_waste",
		Recyclable: false,
		Bin:        "e-waste collection",
		Notes:      "Never place electronics in regular trash or recycling.",
	},
	"battery": {
		WasteType:  "battery",
		Recyclable: false,
		Bin:        "hazardous waste collection",
		Notes:      "Tape terminals of lithium batteries before drop-off.",
	},
	"textile": {
		WasteType:  "textile",
		Recyclable: false,
		Bin:        "textile donation or drop-off",
		Notes:      "Wearable items can be donated.",
	},
	"hazardous_waste": {
		WasteType:  "hazardous_waste",
		Recyclable: false,
		Bin:        "hazardous waste collection",
		Notes:      "Take to a certified hazardous waste facility.",
	},
}

// Lookup returns disposal guidance for the given label. Unknown labels get
// generic guidance, never an error.
func Lookup(label string) models.Guidance {
	if g, ok := byLabel[label]; ok {
		return g
	}
	g := defaultGuidance
	if label != "" {
		g.WasteType = label
	}
	return g
}
