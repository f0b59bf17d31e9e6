package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/google/uuid"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/orginfo"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/screen"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
	"github.com/sdutta/afsmeter/internal/ui/components"
	"github.com/sdutta/afsmeter/internal/ui/layout"
	"github.com/sdutta/afsmeter/internal/ui/theme"
)

// savedMsg confirms (or fails) the submit of the finished assessment.
type savedMsg struct {
	Err error
}

// recsMsg delivers LLM recommendations.
type recsMsg struct {
	Recs []recommend.Recommendation
	Err  error
}

// ReportScreen shows the scored results of a finished assessment run.
type ReportScreen struct {
	doc         *framework.Document
	info        orginfo.OrgInfo
	sel         assessment.Selection
	sheet       assessment.AnswerSheet
	report      assessment.Report
	cache       *statecache.Cache
	assessments store.AssessmentRepo
	recommender *recommend.Service

	saved       bool
	saveErr     string
	recs        []recommend.Recommendation
	recsLoading bool
	recsErr     string
	scroll      int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New scores the answer sheet and creates the report screen.
func New(doc *framework.Document, info orginfo.OrgInfo, sel assessment.Selection, sheet assessment.AnswerSheet, cache *statecache.Cache, assessments store.AssessmentRepo, recommender *recommend.Service) *ReportScreen {
	selected := assessment.SelectedDomains(doc, sel)
	return &ReportScreen{
		doc:         doc,
		info:        info,
		sel:         sel,
		sheet:       sheet,
		report:      assessment.BuildReport(selected, sheet),
		cache:       cache,
		assessments: assessments,
		recommender: recommender,
	}
}

// NewReadOnly shows a previously submitted assessment. Submitting again
// is disabled.
func NewReadOnly(doc *framework.Document, rec *store.AssessmentRecord) *ReportScreen {
	sel := assessment.SelectionFromAreaIDs(doc, rec.Payload.SelectedAreas)
	sheet := assessment.AnswerSheet(rec.Payload.Answers)
	if sheet == nil {
		sheet = assessment.NewAnswerSheet()
	}
	selected := assessment.SelectedDomains(doc, sel)
	return &ReportScreen{
		doc:    doc,
		sel:    sel,
		sheet:  sheet,
		report: assessment.BuildReport(selected, sheet),
		saved:  true,
	}
}

func (r *ReportScreen) Init() tea.Cmd {
	return nil
}

func (r *ReportScreen) Title() string {
	return "Report"
}

func (r *ReportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
	}
	if !r.saved && r.assessments != nil {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	}
	if r.recommender != nil && r.recs == nil && !r.recsLoading {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Recommendations"})
	}
	return hints
}

func (r *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			r.saveErr = msg.Err.Error()
		} else {
			r.saved = true
			r.saveErr = ""
		}
		return r, nil

	case recsMsg:
		r.recsLoading = false
		if msg.Err != nil {
			r.recsErr = msg.Err.Error()
		} else {
			r.recs = msg.Recs
		}
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if r.scroll > 0 {
				r.scroll--
			}
		case "down", "j":
			r.scroll++
		case "s", "S":
			if !r.saved && r.assessments != nil {
				return r, r.submit()
			}
		case "r", "R":
			if r.recommender != nil && r.recs == nil && !r.recsLoading {
				r.recsLoading = true
				r.recsErr = ""
				return r, r.fetchRecommendations()
			}
		}
	}
	return r, nil
}

// submit persists the finished run and clears the resume cache.
func (r *ReportScreen) submit() tea.Cmd {
	rec := &store.AssessmentRecord{
		ID:               uuid.NewString(),
		Organization:     r.info.Organization,
		Team:             r.info.Team,
		AssessorName:     r.info.AssessorName,
		AssessorEmail:    r.info.AssessorEmail,
		FrameworkName:    r.doc.Name,
		FrameworkVersion: r.doc.Version,
		OverallScore:     r.report.OverallScore,
		MaturityLevel:    r.report.OverallLevel.String(),
		Payload:          assessment.BuildPayload(r.info, r.doc, r.sel, r.sheet),
		CreatedAt:        time.Now(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.assessments.Save(ctx, rec); err != nil {
			return savedMsg{Err: err}
		}
		if r.cache != nil {
			_ = r.cache.Clear()
		}
		return savedMsg{}
	}
}

func (r *ReportScreen) fetchRecommendations() tea.Cmd {
	rep := r.report
	svc := r.recommender
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		recs, err := svc.ForReport(ctx, rep)
		return recsMsg{Recs: recs, Err: err}
	}
}

func (r *ReportScreen) View(width, height int) string {
	lines := strings.Split(r.render(width), "\n")

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if r.scroll > maxScroll {
		r.scroll = maxScroll
	}

	end := r.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[r.scroll:end], "\n")
}

func (r *ReportScreen) render(width int) string {
	var b strings.Builder
	rep := r.report

	// Overall score card.
	levelStyle := lipgloss.NewStyle().
		Foreground(theme.LevelColor(rep.OverallLevel.Rank())).
		Bold(true)
	headline := fmt.Sprintf("Overall: %.2f / %.1f", rep.OverallScore, assessment.MaxScore)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Title.Render(headline)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		levelStyle.Render(rep.OverallLevel.String())+
			theme.Hint.Render("  "+rep.OverallLevel.Description())))
	b.WriteString("\n\n")

	// Completion line.
	comp := rep.Completion
	compLine := fmt.Sprintf("Answered %d of %d questions (%.0f%%)",
		comp.Answered, comp.Questions, comp.Percent*100)
	if comp.IsComplete {
		compLine += "  ✓ complete"
	} else if comp.IsSubstantial {
		compLine += "  · substantial"
	} else {
		compLine += "  · partial"
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(compLine)))
	b.WriteString("\n\n")

	barWidth := width - 12
	if barWidth > 60 {
		barWidth = 60
	}

	for _, d := range rep.Domains {
		domLine := fmt.Sprintf("%s — %.2f (%s)", d.Name, d.Score, d.Level)
		b.WriteString("  " + lipgloss.NewStyle().
			Foreground(theme.LevelColor(d.Level.Rank())).
			Bold(true).
			Render(domLine))
		b.WriteString("\n")

		for _, a := range d.Areas {
			bar := components.NewProgressBar(
				fmt.Sprintf("    %-28s", truncate(a.Name, 28)),
				a.Percent, true, barWidth)
			b.WriteString(bar.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Improvement potential.
	if rep.Improvement.IsAchievable {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf(
			"Improvement potential: %.2f points to Optimized",
			rep.Improvement.GapToTarget)))
	} else {
		b.WriteString("  " + theme.Positive.Render("Nothing left to improve. Well done."))
	}
	b.WriteString("\n")

	// Status line for submit.
	switch {
	case r.saveErr != "":
		b.WriteString("\n  " + theme.Negative.Render("Submit failed: "+r.saveErr) + "\n")
	case r.saved:
		b.WriteString("\n  " + theme.Positive.Render("✓ Assessment saved") + "\n")
	}

	// Recommendations.
	if r.recsLoading {
		b.WriteString("\n  " + theme.Hint.Render("Generating recommendations...") + "\n")
	}
	if r.recsErr != "" {
		b.WriteString("\n  " + theme.Negative.Render("Recommendations failed: "+r.recsErr) + "\n")
	}
	if len(r.recs) > 0 {
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recommendations") + "\n")
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60))) + "\n\n")
		for _, rec := range r.recs {
			prio := theme.Hint.Render("[" + rec.Priority + "]")
			b.WriteString(fmt.Sprintf("  %s %s — %s\n",
				prio,
				lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(rec.Title),
				rec.AreaID))
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(rec.Rationale) + "\n")
			for _, act := range rec.Actions {
				b.WriteString("    • " + lipgloss.NewStyle().Foreground(theme.Text).Render(act) + "\n")
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
