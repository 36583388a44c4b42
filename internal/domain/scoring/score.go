package scoring

import (
	"fmt"
	"math"

	"smartlenderup-backend/internal/domain/apperr"
)

const (
	MinScore = 300
	MaxScore = 850
)

// ValidateWeights is the save-time rule: known unique factors, weights in
// [0,100] and enabled weights summing to exactly 100.
func ValidateWeights(params []Parameter) error {
	if len(params) == 0 {
		return apperr.Validation("parameters", "is required")
	}
	seen := make(map[Factor]bool, len(params))
	sum := 0
	for _, p := range params {
		if !p.Factor.Valid() {
			return apperr.Validation("factor", fmt.Sprintf("unknown factor %q", p.Factor))
		}
		if seen[p.Factor] {
			return apperr.Validation("factor", fmt.Sprintf("duplicate factor %q", p.Factor))
		}
		seen[p.Factor] = true
		if p.Weight < 0 || p.Weight > 100 {
			return apperr.Validation("weight", fmt.Sprintf("%s weight must be between 0 and 100", p.Factor))
		}
		if p.Enabled {
			sum += p.Weight
		}
	}
	if sum != 100 {
		return apperr.Validation("weight", fmt.Sprintf("enabled weights must sum to 100, got %d", sum))
	}
	return nil
}

// Score maps the weighted factor sum onto [300,850]. Weights are used as
// stored; a set that does not sum to 100 still produces a clamped score.
func Score(f FactorScores, params []Parameter) int {
	weighted := 0.0
	for _, p := range params {
		if !p.Enabled {
			continue
		}
		weighted += float64(clamp(f[p.Factor], 0, 100)) * float64(p.Weight) / 100
	}
	s := MinScore + int(math.Round(weighted*float64(MaxScore-MinScore)/100))
	return clamp(s, MinScore, MaxScore)
}

// Category is the only risk-band policy.
func Category(score int) RiskCategory {
	switch {
	case score >= 761:
		return RiskExcellent
	case score >= 701:
		return RiskGood
	case score >= 621:
		return RiskFair
	default:
		return RiskPoor
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
