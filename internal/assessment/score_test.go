package assessment

import (
	"math"
	"testing"

	"github.com/sdutta/afsmeter/internal/framework"
)

const epsilon = 0.0001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestAreaScore_Empty(t *testing.T) {
	if got := AreaScore(nil); got != 0 {
		t.Errorf("AreaScore(nil) = %v, want 0", got)
	}
	if got := AreaScore([]Answer{}); got != 0 {
		t.Errorf("AreaScore([]) = %v, want 0", got)
	}
}

func TestAreaScore_SingleYes(t *testing.T) {
	if got := AreaScore([]Answer{Yes}); !almostEqual(got, 5.0) {
		t.Errorf("AreaScore([yes]) = %v, want 5.00", got)
	}
}

func TestAreaScore_HalfYes(t *testing.T) {
	if got := AreaScore([]Answer{Yes, No}); !almostEqual(got, 2.5) {
		t.Errorf("AreaScore([yes no]) = %v, want 2.50", got)
	}
}

func TestAreaScore_AllNo(t *testing.T) {
	if got := AreaScore([]Answer{No, No}); got != 0 {
		t.Errorf("AreaScore([no no]) = %v, want 0", got)
	}
}

func TestAreaScore_UnansweredCountsAgainst(t *testing.T) {
	// 1 yes of 3 questions; unanswered is not excluded from the denominator.
	got := AreaScore([]Answer{Yes, Unanswered, Unanswered})
	if !almostEqual(got, 1.67) {
		t.Errorf("AreaScore = %v, want 1.67", got)
	}
}

func TestAreaScore_RoundsTwoDecimals(t *testing.T) {
	// 1/3 * 5 = 1.6666... → 1.67
	got := AreaScore([]Answer{Yes, No, No})
	if !almostEqual(got, 1.67) {
		t.Errorf("AreaScore = %v, want 1.67", got)
	}
	// 2/3 * 5 = 3.3333... → 3.33
	got = AreaScore([]Answer{Yes, Yes, No})
	if !almostEqual(got, 3.33) {
		t.Errorf("AreaScore = %v, want 3.33", got)
	}
}

func TestAreaScore_AlwaysInRange(t *testing.T) {
	rows := [][]Answer{
		nil,
		{Yes},
		{No},
		{Unanswered},
		{Yes, Yes, Yes, Yes, Yes},
		{Yes, No, Unanswered, Yes, No, No, Yes},
	}
	for _, row := range rows {
		got := AreaScore(row)
		if got < 0 || got > 5 {
			t.Errorf("AreaScore(%v) = %v, out of [0,5]", row, got)
		}
		yes := 0
		for _, a := range row {
			if a == Yes {
				yes++
			}
		}
		den := len(row)
		if den == 0 {
			den = 1
		}
		want := math.Round(float64(yes)/float64(den)*5*100) / 100
		if !almostEqual(got, want) {
			t.Errorf("AreaScore(%v) = %v, want %v", row, got, want)
		}
	}
}

func TestDomainScore_UnansweredAreaPullsDown(t *testing.T) {
	areas := []framework.Area{
		{ID: "A", Questions: make([]framework.Question, 2)},
		{ID: "B", Questions: make([]framework.Question, 3)},
	}
	sheet := AnswerSheet{
		"A": {Yes, Yes}, // 5.00
		// B never visited → 0.00 by convention, still counted
	}
	got := DomainScore(areas, sheet)
	if !almostEqual(got, 2.5) {
		t.Errorf("DomainScore = %v, want 2.50", got)
	}
}

func TestDomainScore_Empty(t *testing.T) {
	if got := DomainScore(nil, NewAnswerSheet()); got != 0 {
		t.Errorf("DomainScore(nil) = %v, want 0", got)
	}
}

func TestDomainScore_EqualAreaWeight(t *testing.T) {
	// A 2-question area and a 20-question area weigh the same.
	small := []Answer{Yes, Yes}
	large := make([]Answer, 20) // all unanswered
	areas := []framework.Area{
		{ID: "small", Questions: make([]framework.Question, 2)},
		{ID: "large", Questions: make([]framework.Question, 20)},
	}
	sheet := AnswerSheet{"small": small, "large": large}
	if got := DomainScore(areas, sheet); !almostEqual(got, 2.5) {
		t.Errorf("DomainScore = %v, want 2.50", got)
	}
}

func TestOverallScore_MeanOfDomains(t *testing.T) {
	domains := []framework.Domain{
		{ID: "D1", Areas: []framework.Area{
			{ID: "A", Questions: make([]framework.Question, 2)},
			{ID: "B", Questions: make([]framework.Question, 3)},
		}},
		{ID: "D2", Areas: []framework.Area{
			{ID: "C", Questions: make([]framework.Question, 1)},
		}},
	}
	sheet := AnswerSheet{
		"A": {Yes, Yes}, // 5.00
		"C": {Yes},      // 5.00 → D2 = 5.00
	}
	// D1 = (5.00 + 0.00)/2 = 2.50; overall = (2.50 + 5.00)/2 = 3.75
	if got := OverallScore(domains, sheet); !almostEqual(got, 3.75) {
		t.Errorf("OverallScore = %v, want 3.75", got)
	}
}

func TestOverallScore_Empty(t *testing.T) {
	if got := OverallScore(nil, NewAnswerSheet()); got != 0 {
		t.Errorf("OverallScore(nil) = %v, want 0", got)
	}
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	// 0.625 is exactly representable, so this is a true .xx5 tie.
	if got := round2(0.625); !almostEqual(got, 0.63) {
		t.Errorf("round2(0.625) = %v, want 0.63", got)
	}
	if got := round2(0.6249); !almostEqual(got, 0.62) {
		t.Errorf("round2(0.6249) = %v, want 0.62", got)
	}
	// One yes out of eight questions: 5/8 = 0.625 → 0.63.
	if got := AreaScore([]Answer{Yes, No, No, No, No, No, No, No}); !almostEqual(got, 0.63) {
		t.Errorf("AreaScore(1 of 8) = %v, want 0.63", got)
	}
}
