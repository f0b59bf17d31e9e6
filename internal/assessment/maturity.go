package assessment

// Level is the SSE-CMM-inspired five-level maturity classification.
// Classification runs on the 0–1 yes-fraction in 20% bands.
type Level int

const (
	Informal Level = iota + 1
	Defined
	Systematic
	Integrated
	Optimized
)

// Classify maps a 0–1 fraction to its maturity level. Band edges are
// inclusive on the upper bound: exactly 0.20 is still Informal.
func Classify(fraction float64) Level {
	p := clamp01(fraction)
	switch {
	case p <= 0.20:
		return Informal
	case p <= 0.40:
		return Defined
	case p <= 0.60:
		return Systematic
	case p <= 0.80:
		return Integrated
	default:
		return Optimized
	}
}

// ClassifyScore maps a 0–5 score to its maturity level.
func ClassifyScore(score float64) Level {
	return Classify(score / MaxScore)
}

// Rank returns the 1–5 numeric rank of the level.
func (l Level) Rank() int {
	if l < Informal || l > Optimized {
		return int(Informal)
	}
	return int(l)
}

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case Informal:
		return "Informal"
	case Defined:
		return "Defined"
	case Systematic:
		return "Systematic"
	case Integrated:
		return "Integrated"
	case Optimized:
		return "Optimized"
	default:
		return "Informal"
	}
}

// Description returns a short characterization of the level.
func (l Level) Description() string {
	switch l {
	case Defined:
		return "Practices defined; initial standardization; repeatable in pockets"
	case Systematic:
		return "Practices systematically applied; governance emerging; wider coverage"
	case Integrated:
		return "Practices integrated across the lifecycle; cross-functional; measurable"
	case Optimized:
		return "Practices optimized; continuous improvement; predictive and proactive"
	default:
		return "Ad-hoc practices; limited consistency; nothing standardized"
	}
}

// Range returns the level's percentage band for display.
func (l Level) Range() string {
	switch l {
	case Defined:
		return "21-40%"
	case Systematic:
		return "41-60%"
	case Integrated:
		return "61-80%"
	case Optimized:
		return "81-100%"
	default:
		return "0-20%"
	}
}
