package service

import (
	"math"

	"github.com/studytrack-io/studytrack/internal/domain/models"
)

// Weight model bounds. Weights outside [0.5, 3.0] are clamped.
const (
	weightMin = 0.5
	weightMax = 3.0
)

// difficultyFactor maps a subject's declared difficulty to a multiplier.
func difficultyFactor(difficulty string) float64 {
	switch difficulty {
	case models.DifficultyEasy:
		return 0.9
	case models.DifficultyHard:
		return 1.2
	default:
		return 1.0
	}
}

// creditFactor grows with credit hours, capped at 1.4. Zero credit is
// neutral, not discounted.
func creditFactor(credit int) float64 {
	if credit <= 0 {
		return 1.0
	}
	return math.Min(1.4, 0.8+float64(credit)/3.5)
}

// loadFactor grows with the open estimated minutes, adding at most 50%.
func loadFactor(openEstimatedMin int) float64 {
	return 1 + math.Min(0.5, float64(openEstimatedMin)/600)
}

// urgencyFactor adds 10% per task due within the urgency horizon, capped
// at 30%.
func urgencyFactor(urgentCount int) float64 {
	return 1 + math.Min(0.3, float64(urgentCount)*0.1)
}

// computeWeight derives a subject's study weight from its difficulty,
// credit and open workload, clamped to [0.5, 3.0] and rounded to two
// decimal places.
func computeWeight(subject *models.Subject, workload *models.SubjectWorkload) float64 {
	w := difficultyFactor(subject.Difficulty) *
		creditFactor(subject.Credit) *
		loadFactor(workload.OpenEstimatedMin) *
		urgencyFactor(workload.UrgentCount)
	w = math.Max(weightMin, math.Min(weightMax, w))
	return math.Round(w*100) / 100
}
