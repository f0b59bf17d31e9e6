package assessment

import (
	"math"

	"github.com/sdutta/afsmeter/internal/framework"
)

// MaxScore is the top of the normalized score scale.
const MaxScore = 5.0

// AreaScore scores one area's answer row on the 0–5 scale: the fraction
// of Yes answers times 5, rounded to two decimals. No and Unanswered
// both count against the area. An empty row scores 0.
func AreaScore(answers []Answer) float64 {
	yes := 0
	for _, a := range answers {
		if a == Yes {
			yes++
		}
	}
	den := len(answers)
	if den == 0 {
		den = 1
	}
	raw := clamp01(float64(yes) / float64(den))
	return round2(raw * MaxScore)
}

// DomainScore is the unweighted mean of the domain's area scores. Every
// area contributes exactly one term: an area the user never visited has
// no answer row and scores 0, pulling the mean down rather than being
// skipped. An empty area list scores 0.
func DomainScore(areas []framework.Area, sheet AnswerSheet) float64 {
	if len(areas) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range areas {
		sum += AreaScore(sheet[a.ID])
	}
	return round2(sum / float64(len(areas)))
}

// OverallScore is the unweighted mean of the selected domains' scores.
// Domains pass in with their areas already filtered to the selection
// (see SelectedDomains). Empty input scores 0.
//
// Averaging means, not questions, is deliberate: an area with 2 questions
// and one with 20 weigh the same within their domain, and every domain
// weighs the same overall, so question-heavy domains cannot dominate.
func OverallScore(domains []framework.Domain, sheet AnswerSheet) float64 {
	if len(domains) == 0 {
		return 0
	}
	sum := 0.0
	for _, dom := range domains {
		sum += DomainScore(dom.Areas, sheet)
	}
	return round2(sum / float64(len(domains)))
}

// YesFraction returns the raw 0–1 fraction of Yes answers in a row,
// with the same empty-row convention as AreaScore.
func YesFraction(answers []Answer) float64 {
	yes := 0
	for _, a := range answers {
		if a == Yes {
			yes++
		}
	}
	den := len(answers)
	if den == 0 {
		den = 1
	}
	return clamp01(float64(yes) / float64(den))
}

// round2 rounds to two decimals, halves away from zero. math.Round's
// tie-breaking is the documented choice for the .xx5 boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
