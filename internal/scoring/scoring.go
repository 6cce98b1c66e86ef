// Package scoring combines analyzer signals into one composite match score.
//
// Every component is normalized to [0,1] and the final score is a convex weighted
// sum scaled to 0-100. The scorer is total: any combination of signals yields a
// score, and the score never decreases when a positively weighted component grows.
package scoring

import (
	"fmt"
	"math"

	"github.com/jonathan/resume-scorer/internal/types"
)

// Default weights for scoring components
const (
	keywordsWeight     = 0.25
	skillsWeight       = 0.20
	experienceWeight   = 0.15
	educationWeight    = 0.10
	achievementsWeight = 0.10
	languageWeight     = 0.10
	formatWeight       = 0.05
	diversityWeight    = 0.05
)

// Saturation points for count-based components
const (
	achievementsCap = 5
	diversityCap    = 3
)

// weightTolerance is the allowed deviation of the weight sum from 1.
const weightTolerance = 1e-6

// Weights holds the weight of each component. Weights are non-negative and sum to 1.
type Weights struct {
	Keywords     float64 `mapstructure:"keywords" json:"keywords"`
	Skills       float64 `mapstructure:"skills" json:"skills"`
	Experience   float64 `mapstructure:"experience" json:"experience"`
	Education    float64 `mapstructure:"education" json:"education"`
	Achievements float64 `mapstructure:"achievements" json:"achievements"`
	Language     float64 `mapstructure:"language" json:"language"`
	Format       float64 `mapstructure:"format" json:"format"`
	Diversity    float64 `mapstructure:"diversity" json:"diversity"`
}

// DefaultWeights returns the default component weights.
func DefaultWeights() Weights {
	return Weights{
		Keywords:     keywordsWeight,
		Skills:       skillsWeight,
		Experience:   experienceWeight,
		Education:    educationWeight,
		Achievements: achievementsWeight,
		Language:     languageWeight,
		Format:       formatWeight,
		Diversity:    diversityWeight,
	}
}

// WeightsError reports an invalid weighting scheme.
type WeightsError struct {
	Message string
}

func (e *WeightsError) Error() string {
	return fmt.Sprintf("invalid scoring weights: %s", e.Message)
}

// Validate checks that weights are finite, non-negative and sum to 1.
func (w Weights) Validate() error {
	sum := 0.0
	for name, v := range w.named() {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &WeightsError{Message: fmt.Sprintf("%s weight must be a non-negative number, got %v", name, v)}
		}
		sum += v
	}
	if math.Abs(sum-1) > weightTolerance {
		return &WeightsError{Message: fmt.Sprintf("weights must sum to 1, got %.6f", sum)}
	}
	return nil
}

func (w Weights) named() map[string]float64 {
	return map[string]float64{
		"keywords":     w.Keywords,
		"skills":       w.Skills,
		"experience":   w.Experience,
		"education":    w.Education,
		"achievements": w.Achievements,
		"language":     w.Language,
		"format":       w.Format,
		"diversity":    w.Diversity,
	}
}

// Scorer turns signals into a ScoreReport.
type Scorer struct {
	weights Weights
}

// New creates a Scorer after validating the weights.
func New(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Default returns a Scorer using DefaultWeights.
func Default() *Scorer {
	return &Scorer{weights: DefaultWeights()}
}

// Weights returns the scorer's weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Components normalizes each signal to [0,1].
func Components(sig *types.Signals) types.Components {
	return types.Components{
		Keywords:     clamp(sig.Keywords.Density),
		Skills:       ratio(sig.Skills.Matched, sig.Skills.Matched+sig.Skills.Missing),
		Experience:   ratio(sig.Experience.Count, len(sig.Experience.JobTitles)),
		Education:    indicator(sig.Education.Verified),
		Achievements: ratio(min(sig.Achievements.Count, achievementsCap), achievementsCap),
		Language:     languageScore(sig.Language),
		Format:       indicator(sig.Format.Clean),
		Diversity:    ratio(min(sig.Diversity.Count, diversityCap), diversityCap),
	}
}

// Combine applies the weights to normalized components and returns a 0-100 score
// rounded to two decimals.
func (s *Scorer) Combine(c types.Components) float64 {
	w := s.weights
	total := w.Keywords*clamp(c.Keywords) +
		w.Skills*clamp(c.Skills) +
		w.Experience*clamp(c.Experience) +
		w.Education*clamp(c.Education) +
		w.Achievements*clamp(c.Achievements) +
		w.Language*clamp(c.Language) +
		w.Format*clamp(c.Format) +
		w.Diversity*clamp(c.Diversity)
	return math.Round(total*100*100) / 100
}

// Score builds the final report from the signals and sections.
func (s *Scorer) Score(sig types.Signals, sections types.SectionMap) *types.ScoreReport {
	components := Components(&sig)
	return &types.ScoreReport{
		FinalScore: s.Combine(components),
		Components: components,
		Signals:    sig,
		Sections:   sections,
	}
}

// languageScore is the share of checked word occurrences that are spelled correctly.
func languageScore(res types.LanguageResult) float64 {
	if res.WordsChecked <= 0 {
		return 0
	}
	return clamp(1 - float64(res.MisspelledCount)/float64(res.WordsChecked))
}

func ratio(num, den int) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	return clamp(float64(num) / float64(den))
}

func indicator(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// clamp bounds v to [0,1]; NaN maps to 0.
func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
