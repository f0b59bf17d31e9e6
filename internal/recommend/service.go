// Package recommend turns a scored assessment report into concrete
// improvement recommendations using an LLM provider.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/llm"
)

// Config holds configuration for the recommendation service.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxAreas caps how many weak areas are sent for recommendations.
	MaxAreas int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
		MaxAreas:    5,
	}
}

// Recommendation is one improvement suggestion for a single area.
type Recommendation struct {
	AreaID    string   `json:"area_id"`
	Title     string   `json:"title"`
	Rationale string   `json:"rationale"`
	Actions   []string `json:"actions"`
	Priority  string   `json:"priority"`
}

// Service generates recommendations from assessment reports.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a recommendation service backed by the given provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// recommendationOutput is the raw LLM response.
type recommendationOutput struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// ForReport asks the LLM for improvement recommendations targeting the
// weakest areas of the report. Recommendations for area IDs that were
// not in the prompt are dropped.
func (s *Service) ForReport(ctx context.Context, report assessment.Report) ([]Recommendation, error) {
	ctx = llm.WithPurpose(ctx, "recommendations")

	weakest := report.WeakestAreas(s.cfg.MaxAreas)
	if len(weakest) == 0 {
		return nil, nil
	}

	userMsg, err := buildRecommendationMessage(report, weakest)
	if err != nil {
		return nil, fmt.Errorf("build recommendation prompt: %w", err)
	}

	req := llm.Request{
		System: recommendationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      RecommendationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM recommendation failed: %w", err)
	}

	var raw recommendationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	known := make(map[string]bool, len(weakest))
	for _, a := range weakest {
		known[a.AreaID] = true
	}

	recs := raw.Recommendations[:0]
	for _, r := range raw.Recommendations {
		// An ID outside the prompted list means the LLM invented an area.
		if known[r.AreaID] {
			recs = append(recs, r)
		}
	}

	return recs, nil
}

const recommendationSystemPrompt = `You are an advisor on trustworthy and responsible AI practices. An organization has completed a self-assessment against the AFS framework and you are given their weakest areas with scores on a 0-5 scale.

Instructions:
- Produce one recommendation per listed area. Do NOT invent area IDs; only use IDs from the list.
- Title is a short imperative phrase. Rationale is one or two sentences grounded in the score.
- Give 2-4 concrete first steps per area, each a single actionable sentence.
- Set priority by how far the area is below the Systematic level (60%): high when well below, low when close.`

var recommendationUserTemplate = template.Must(template.New("recommend").Parse(`Overall score: {{printf "%.2f" .Report.OverallScore}}/5 ({{.Report.OverallLevel}})
Completion: {{.Report.Completion.Answered}}/{{.Report.Completion.Questions}} questions answered

Weakest areas:
{{range .Areas}}- {{.AreaID}} ({{.Name}}): score {{printf "%.2f" .Score}}/5, level {{.Level}}, {{.Answered}}/{{.Questions}} answered
{{end}}`))

func buildRecommendationMessage(report assessment.Report, areas []assessment.AreaReport) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Report assessment.Report
		Areas  []assessment.AreaReport
	}{report, areas}
	if err := recommendationUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
