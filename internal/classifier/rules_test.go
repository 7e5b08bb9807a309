package classifier

import (
	"testing"

	"go-waste-inspector/internal/vocab"
)

func TestDecide_AluminumCanBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	fv := FeatureVector{
		MetallicScore: 0.7,
		AspectRatio:   1.2,
		FillRatio:     0.8,
	}
	p, tag := engine.Decide(fv)

	if tag != RuleAluminumCan {
		t.Fatalf("Expected rule %q, got %q", RuleAluminumCan, tag)
	}
	if p.Label != "aluminum_can" {
		t.Errorf("Expected label aluminum_can, got %q", p.Label)
	}
	if p.Confidence != 0.88 {
		t.Errorf("Expected confidence 0.88 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_BrightnessPathToCan(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	// Metallic score below the gate, but bright and varied enough to
	// qualify through the brightness alternative.
	fv := FeatureVector{
		MetallicScore: 0.3,
		AvgValue:      180,
		BrightnessStd: 30,
		AspectRatio:   1.0,
		FillRatio:     0.9,
	}
	_, tag := engine.Decide(fv)

	if tag != RuleAluminumCan {
		t.Errorf("Expected rule %q, got %q", RuleAluminumCan, tag)
	}
}

func TestDecide_PlasticBottleBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	fv := FeatureVector{
		BrightnessStd: 45,
		AvgSaturation: 30,
		AspectRatio:   2.0,
		FillRatio:     0.5,
	}
	p, tag := engine.Decide(fv)

	if tag != RulePlasticBottle {
		t.Fatalf("Expected rule %q, got %q", RulePlasticBottle, tag)
	}
	if p.Label != "plastic_bottle" {
		t.Errorf("Expected label plastic_bottle, got %q", p.Label)
	}
	if p.Confidence != 0.85 {
		t.Errorf("Expected confidence 0.85 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_PlasticBottleJitterBounds(t *testing.T) {
	fv := FeatureVector{
		BrightnessStd: 45,
		AvgSaturation: 30,
		AspectRatio:   2.0,
		FillRatio:     0.5,
	}

	for seed := int64(0); seed < 50; seed++ {
		engine := NewDecisionEngine(vocab.Default(), NewSeededNoise(seed))
		p, _ := engine.Decide(fv)
		if p.Confidence < 0.80 || p.Confidence > 0.90 {
			t.Errorf("Seed %d: confidence %f outside [0.80, 0.90]", seed, p.Confidence)
		}
	}
}

func TestDecide_GlassBottleBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	// Std too low for the plastic rule but bright and reflective.
	fv := FeatureVector{
		BrightnessStd: 35,
		AvgSaturation: 30,
		AvgValue:      200,
		AspectRatio:   2.0,
		FillRatio:     0.5,
	}
	p, tag := engine.Decide(fv)

	if tag != RuleGlassBottle {
		t.Fatalf("Expected rule %q, got %q", RuleGlassBottle, tag)
	}
	if p.Label != "glass_bottle" {
		t.Errorf("Expected label glass_bottle, got %q", p.Label)
	}
	if p.Confidence != 0.82 {
		t.Errorf("Expected confidence 0.82 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_MetallicFallbackBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	// Moderately metallic, but squat geometry rules out the can branch.
	fv := FeatureVector{
		MetallicScore: 0.55,
		AspectRatio:   0.5,
		FillRatio:     0.9,
		BrightnessStd: 10,
	}
	p, tag := engine.Decide(fv)

	if tag != RuleMetallicFallback {
		t.Fatalf("Expected rule %q, got %q", RuleMetallicFallback, tag)
	}
	if p.Label != "aluminum_can" {
		t.Errorf("Expected label aluminum_can, got %q", p.Label)
	}
	if p.Confidence != 0.70 {
		t.Errorf("Expected confidence 0.70 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_CardboardBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	fv := FeatureVector{
		AvgHue:        20,
		AvgValue:      100,
		AvgSaturation: 60,
		BrightnessStd: 10,
		AspectRatio:   1.0,
		FillRatio:     0.5,
	}
	p, tag := engine.Decide(fv)

	if tag != RuleCardboard {
		t.Fatalf("Expected rule %q, got %q", RuleCardboard, tag)
	}
	if p.Label != "cardboard" {
		t.Errorf("Expected label cardboard, got %q", p.Label)
	}
	if p.Confidence != 0.72 {
		t.Errorf("Expected confidence 0.72 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_PaperBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	fv := FeatureVector{
		AvgValue:      200,
		AvgSaturation: 20,
		BrightnessStd: 10,
		AspectRatio:   1.0,
		FillRatio:     0.5,
	}
	p, tag := engine.Decide(fv)

	if tag != RulePaper {
		t.Fatalf("Expected rule %q, got %q", RulePaper, tag)
	}
	if p.Label != "paper" {
		t.Errorf("Expected label paper, got %q", p.Label)
	}
	if p.Confidence != 0.75 {
		t.Errorf("Expected confidence 0.75 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_DefaultBranch(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	// Matches nothing specific: mid-value, saturated, flat.
	fv := FeatureVector{
		AvgHue:        50,
		AvgValue:      100,
		AvgSaturation: 100,
		BrightnessStd: 10,
		MetallicScore: 0.2,
		AspectRatio:   1.0,
		FillRatio:     0.5,
	}
	p, tag := engine.Decide(fv)

	if tag != RuleDefault {
		t.Fatalf("Expected rule %q, got %q", RuleDefault, tag)
	}
	if p.Label != "plastic_container" {
		t.Errorf("Expected label plastic_container, got %q", p.Label)
	}
	if p.Confidence != 0.72 {
		t.Errorf("Expected confidence 0.72 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_DegenerateFeatures(t *testing.T) {
	v := vocab.Default()
	engine := NewDecisionEngine(v, NewZeroNoise())

	p, tag := engine.Decide(FeatureVector{})

	if tag != RuleNoContour {
		t.Fatalf("Expected rule %q, got %q", RuleNoContour, tag)
	}
	if p.Label != v.At(0) {
		t.Errorf("Zero noise should pick the first label %q, got %q", v.At(0), p.Label)
	}
	// 0.50 + 0.5*0.20 with zero noise's mid-range draw.
	if p.Confidence != 0.60 {
		t.Errorf("Expected confidence 0.60 with zero noise, got %f", p.Confidence)
	}
}

func TestDecide_DegenerateBounds(t *testing.T) {
	v := vocab.Default()
	for seed := int64(0); seed < 50; seed++ {
		engine := NewDecisionEngine(v, NewSeededNoise(seed))
		p, tag := engine.Decide(FeatureVector{})
		if tag != RuleNoContour {
			t.Fatalf("Seed %d: expected rule %q, got %q", seed, RuleNoContour, tag)
		}
		if !v.Contains(p.Label) {
			t.Errorf("Seed %d: label %q not in vocabulary", seed, p.Label)
		}
		if p.Confidence < 0.50 || p.Confidence >= 0.70 {
			t.Errorf("Seed %d: confidence %f outside [0.50, 0.70)", seed, p.Confidence)
		}
	}
}

func TestDecide_PriorityCanBeatsBottle(t *testing.T) {
	engine := NewDecisionEngine(vocab.Default(), NewZeroNoise())

	// Satisfies both the can rule and the bottle rule; the can rule sits
	// earlier in the cascade and must win.
	fv := FeatureVector{
		MetallicScore: 0.7,
		BrightnessStd: 45,
		AvgSaturation: 30,
		AspectRatio:   1.8,
		FillRatio:     0.8,
	}
	_, tag := engine.Decide(fv)

	if tag != RuleAluminumCan {
		t.Errorf("Expected the can rule to take priority, got %q", tag)
	}
}

func TestDecide_AlwaysInVocabularyAndUnitRange(t *testing.T) {
	v := vocab.Default()
	engine := NewDecisionEngine(v, NewSeededNoise(7))

	vectors := []FeatureVector{
		{},
		{MetallicScore: 0.9, AspectRatio: 1.0, FillRatio: 0.9},
		{BrightnessStd: 50, AvgSaturation: 10, AspectRatio: 2.5, FillRatio: 0.4},
		{AvgHue: 15, AvgValue: 90, AvgSaturation: 80, AspectRatio: 1.0, FillRatio: 0.3},
		{AvgValue: 220, AvgSaturation: 5, BrightnessStd: 3, AspectRatio: 0.9, FillRatio: 0.2},
		{AvgValue: 100, AvgSaturation: 200, BrightnessStd: 5, AspectRatio: 1.0, FillRatio: 0.5},
	}
	for i, fv := range vectors {
		p, tag := engine.Decide(fv)
		if tag == "" {
			t.Errorf("Vector %d: empty rule tag", i)
		}
		if !v.Contains(p.Label) {
			t.Errorf("Vector %d: label %q not in vocabulary", i, p.Label)
		}
		if p.Confidence < 0 || p.Confidence > 1 {
			t.Errorf("Vector %d: confidence %f outside [0,1]", i, p.Confidence)
		}
	}
}
