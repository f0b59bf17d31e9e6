package assessment

import "github.com/sdutta/afsmeter/internal/framework"

// SubstantialThreshold is the completion fraction above which a run is
// considered substantial enough to score meaningfully.
const SubstantialThreshold = 0.80

// AreaReport is the scored breakdown of one area.
type AreaReport struct {
	AreaID    string  `json:"area_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Percent   float64 `json:"percent"`
	Level     Level   `json:"level"`
	Answered  int     `json:"answered"`
	Questions int     `json:"questions"`
	Coverage  float64 `json:"coverage"`
}

// DomainReport is the scored breakdown of one domain over its selected
// areas.
type DomainReport struct {
	DomainID string       `json:"domain_id"`
	Name     string       `json:"name"`
	Score    float64      `json:"score"`
	Level    Level        `json:"level"`
	Areas    []AreaReport `json:"areas"`
}

// Completion summarizes how much of the selected question set was
// actually answered.
type Completion struct {
	Questions     int     `json:"questions"`
	Answered      int     `json:"answered"`
	Unanswered    int     `json:"unanswered"`
	Percent       float64 `json:"percent"`
	IsComplete    bool    `json:"is_complete"`
	IsSubstantial bool    `json:"is_substantial"`
}

// Improvement quantifies the distance to the Optimized level.
type Improvement struct {
	GapToTarget  float64 `json:"gap_to_target"` // percentage points
	IsAchievable bool    `json:"is_achievable"` // false only at a perfect score
}

// Report is the full scored view of a run: overall score and level plus
// per-domain and per-area detail for the selected subset.
type Report struct {
	OverallScore float64        `json:"overall_score"`
	OverallLevel Level          `json:"overall_level"`
	Domains      []DomainReport `json:"domains"`
	Completion   Completion     `json:"completion"`
	Improvement  Improvement    `json:"improvement"`
}

// BuildReport scores the selected domains against the answer sheet.
// Domains come pre-filtered through SelectedDomains; the report mirrors
// their order.
func BuildReport(domains []framework.Domain, sheet AnswerSheet) Report {
	var (
		domReports    []DomainReport
		totalQs       int
		totalAnswered int
	)

	for _, dom := range domains {
		dr := DomainReport{
			DomainID: dom.ID,
			Name:     dom.Name,
			Score:    DomainScore(dom.Areas, sheet),
		}
		dr.Level = ClassifyScore(dr.Score)

		for _, a := range dom.Areas {
			row := sheet[a.ID]
			answered := sheet.AnsweredCount(a.ID)
			ar := AreaReport{
				AreaID:    a.ID,
				Name:      a.Name,
				Score:     AreaScore(row),
				Percent:   YesFraction(row),
				Answered:  answered,
				Questions: len(a.Questions),
			}
			ar.Level = Classify(ar.Percent)
			if len(a.Questions) > 0 {
				ar.Coverage = clamp01(float64(answered) / float64(len(a.Questions)))
			}
			dr.Areas = append(dr.Areas, ar)

			totalQs += len(a.Questions)
			totalAnswered += answered
		}
		domReports = append(domReports, dr)
	}

	overall := OverallScore(domains, sheet)

	completionPct := 0.0
	if totalQs > 0 {
		completionPct = float64(totalAnswered) / float64(totalQs)
	}

	gap := clamp01(1.0 - overall/MaxScore) * 100

	return Report{
		OverallScore: overall,
		OverallLevel: ClassifyScore(overall),
		Domains:      domReports,
		Completion: Completion{
			Questions:     totalQs,
			Answered:      totalAnswered,
			Unanswered:    totalQs - totalAnswered,
			Percent:       round2(completionPct),
			IsComplete:    totalQs > 0 && totalAnswered >= totalQs,
			IsSubstantial: completionPct >= SubstantialThreshold,
		},
		Improvement: Improvement{
			GapToTarget:  round2(gap),
			IsAchievable: overall < MaxScore,
		},
	}
}

// WeakestAreas returns up to n area reports ordered worst-first,
// breaking score ties by report order. Used to focus recommendations.
func (r Report) WeakestAreas(n int) []AreaReport {
	var all []AreaReport
	for _, d := range r.Domains {
		all = append(all, d.Areas...)
	}
	// Insertion sort keeps the tie-break stable; report sizes are tiny.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].Score < all[j-1].Score; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	if n < len(all) {
		all = all[:n]
	}
	return all
}
