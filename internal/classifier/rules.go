package classifier

import (
	"go-waste-inspector/internal/vocab"
	"go-waste-inspector/pkg/models"
)

// Canonical decision thresholds. Several historical variants of this cascade
// existed with slightly different numbers; this set is the documented
// canonical one and tests pin it down.
const (
	canMetallicMin    = 0.6
	canBrightValueMin = 160.0
	canBrightStdMin   = 25.0
	canFillMin        = 0.65
	canAspectMin      = 0.8
	canAspectMax      = 2.5

	bottleStdMin    = 40.0
	bottleSatMax    = 50.0
	bottleAspectMin = 1.5
	bottleAspectMax = 4.0

	glassStdMin   = 30.0
	glassSatMax   = 40.0
	glassValueMin = 150.0

	fallbackMetallicMin = 0.5

	cardboardHueMin   = 10.0
	cardboardHueMax   = 30.0
	cardboardValueMax = 140.0
	cardboardSatMin   = 30.0

	paperValueMin = 150.0
	paperSatMax   = 40.0
	paperStdMax   = 30.0
)

// Base confidences and jitter amplitudes per rule.
const (
	canConfidence       = 0.88
	bottleConfidence    = 0.85
	glassConfidence     = 0.82
	paperConfidence     = 0.75
	cardboardConfidence = 0.72
	containerConfidence = 0.72
	fallbackConfidence  = 0.70

	primaryJitter  = 0.05
	fallbackJitter = 0.10

	// Degenerate images draw a uniform confidence from [0.50, 0.70).
	degenerateConfidenceMin  = 0.50
	degenerateConfidenceSpan = 0.20
)

// Rule tags, exposed through Decide so overlapping conditions stay auditable.
const (
	RuleNoContour        = "no_contour_fallback"
	RuleAluminumCan      = "aluminum_can"
	RulePlasticBottle    = "plastic_bottle"
	RuleGlassBottle      = "glass_bottle"
	RuleMetallicFallback = "metallic_fallback"
	RuleCardboard        = "cardboard"
	RulePaper            = "paper"
	RuleDefault          = "default_container"
)

// rule is one tagged predicate in the cascade. apply returns nil when the
// rule does not match; the first non-nil result wins.
type rule struct {
	tag   string
	apply func(fv FeatureVector) *models.Prediction
}

type decisionEngine struct {
	vocabulary *vocab.Vocabulary
	noise      Noise
	rules      []rule
}

// NewDecisionEngine builds the ordered rule cascade over the given
// vocabulary. The noise source supplies confidence jitter and the
// degenerate-case label pick.
func NewDecisionEngine(vocabulary *vocab.Vocabulary, noise Noise) DecisionEngine {
	e := &decisionEngine{vocabulary: vocabulary, noise: noise}
	e.rules = []rule{
		{RuleNoContour, e.noContour},
		{RuleAluminumCan, e.aluminumCan},
		{RulePlasticBottle, e.plasticBottle},
		{RuleGlassBottle, e.glassBottle},
		{RuleMetallicFallback, e.metallicFallback},
		{RuleCardboard, e.cardboard},
		{RulePaper, e.paper},
		{RuleDefault, e.defaultContainer},
	}
	return e
}

// Decide evaluates the rules in priority order and returns the first match
// together with the tag of the rule that fired. The final rule always
// matches, so Decide never fails.
func (e *decisionEngine) Decide(fv FeatureVector) (models.Prediction, string) {
	for _, r := range e.rules {
		if p := r.apply(fv); p != nil {
			return *p, r.tag
		}
	}
	// Unreachable: defaultContainer always matches.
	return e.predict("plastic_container", containerConfidence, fallbackJitter), RuleDefault
}

// noContour handles images where edge detection found nothing at all: a
// uniform random label from the vocabulary at reduced confidence. Defined
// fallback behavior, not an error path.
func (e *decisionEngine) noContour(fv FeatureVector) *models.Prediction {
	if !fv.Degenerate() {
		return nil
	}
	label := e.vocabulary.At(e.noise.Intn(e.vocabulary.Len()))
	confidence := degenerateConfidenceMin + e.noise.Float64()*degenerateConfidenceSpan
	return &models.Prediction{Label: label, Confidence: clampUnit(confidence)}
}

// aluminumCan matches bright reflective objects with a well-filled, can-like
// bounding box.
func (e *decisionEngine) aluminumCan(fv FeatureVector) *models.Prediction {
	metallic := fv.MetallicScore > canMetallicMin ||
		(fv.AvgValue > canBrightValueMin && fv.BrightnessStd > canBrightStdMin)
	if !metallic || fv.FillRatio <= canFillMin {
		return nil
	}
	if fv.AspectRatio < canAspectMin || fv.AspectRatio > canAspectMax {
		return nil
	}
	p := e.predict("aluminum_can", canConfidence, primaryJitter)
	return &p
}

// plasticBottle matches translucent, low-saturation objects with a tall
// bottle-like silhouette.
func (e *decisionEngine) plasticBottle(fv FeatureVector) *models.Prediction {
	if fv.BrightnessStd <= bottleStdMin || fv.AvgSaturation >= bottleSatMax {
		return nil
	}
	if fv.AspectRatio < bottleAspectMin || fv.AspectRatio > bottleAspectMax {
		return nil
	}
	p := e.predict("plastic_bottle", bottleConfidence, primaryJitter)
	return &p
}

// glassBottle matches bright reflective bottle silhouettes that missed the
// plastic rule.
func (e *decisionEngine) glassBottle(fv FeatureVector) *models.Prediction {
	if fv.BrightnessStd <= glassStdMin || fv.AvgSaturation >= glassSatMax {
		return nil
	}
	if fv.AspectRatio < bottleAspectMin || fv.AspectRatio > bottleAspectMax {
		return nil
	}
	if fv.AvgValue <= glassValueMin {
		return nil
	}
	p := e.predict("glass_bottle", glassConfidence, primaryJitter)
	return &p
}

// metallicFallback catches moderately metallic surfaces whose geometry did
// not look can-like.
func (e *decisionEngine) metallicFallback(fv FeatureVector) *models.Prediction {
	if fv.MetallicScore <= fallbackMetallicMin {
		return nil
	}
	p := e.predict("aluminum_can", fallbackConfidence, fallbackJitter)
	return &p
}

// cardboard matches dark brownish surfaces with some saturation.
func (e *decisionEngine) cardboard(fv FeatureVector) *models.Prediction {
	if fv.AvgHue < cardboardHueMin || fv.AvgHue > cardboardHueMax {
		return nil
	}
	if fv.AvgValue >= cardboardValueMax || fv.AvgSaturation <= cardboardSatMin {
		return nil
	}
	p := e.predict("cardboard", cardboardConfidence, fallbackJitter)
	return &p
}

// paper matches bright, washed-out, low-variance surfaces.
func (e *decisionEngine) paper(fv FeatureVector) *models.Prediction {
	if fv.AvgValue <= paperValueMin || fv.AvgSaturation >= paperSatMax {
		return nil
	}
	if fv.BrightnessStd >= paperStdMax {
		return nil
	}
	p := e.predict("paper", paperConfidence, fallbackJitter)
	return &p
}

// defaultContainer is the terminal rule; it always matches.
func (e *decisionEngine) defaultContainer(fv FeatureVector) *models.Prediction {
	p := e.predict("plastic_container", containerConfidence, fallbackJitter)
	return &p
}

// predict applies bounded jitter to a base confidence and clamps the result
// into [0,1].
func (e *decisionEngine) predict(label string, base, amplitude float64) models.Prediction {
	return models.Prediction{
		Label:      label,
		Confidence: clampUnit(base + e.noise.Jitter(amplitude)),
	}
}
