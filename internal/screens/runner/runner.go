package runner

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/orginfo"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/router"
	"github.com/sdutta/afsmeter/internal/screen"
	"github.com/sdutta/afsmeter/internal/screens/report"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
	"github.com/sdutta/afsmeter/internal/ui/components"
	"github.com/sdutta/afsmeter/internal/ui/layout"
	"github.com/sdutta/afsmeter/internal/ui/theme"
)

// step locates one question in the selected subset.
type step struct {
	domain   *framework.Domain
	area     *framework.Area
	question int // index within area.Questions
}

// RunnerScreen walks through every question of the selected areas, one
// per view, recording yes/no answers on the sheet.
type RunnerScreen struct {
	doc         *framework.Document
	info        orginfo.OrgInfo
	sel         assessment.Selection
	sheet       assessment.AnswerSheet
	cache       *statecache.Cache
	assessments store.AssessmentRepo
	recommender *recommend.Service

	steps  []step
	pos    int
	choice components.AnswerChoice
}

var _ screen.Screen = (*RunnerScreen)(nil)
var _ screen.KeyHintProvider = (*RunnerScreen)(nil)

// New creates the runner over the selected question set. A sheet with
// existing answers resumes at the first unanswered question.
func New(doc *framework.Document, info orginfo.OrgInfo, sel assessment.Selection, sheet assessment.AnswerSheet, cache *statecache.Cache, assessments store.AssessmentRepo, recommender *recommend.Service) *RunnerScreen {
	if sheet == nil {
		sheet = assessment.NewAnswerSheet()
	}

	selected := assessment.SelectedDomains(doc, sel)
	var steps []step
	for i := range selected {
		dom := &selected[i]
		for j := range dom.Areas {
			area := &dom.Areas[j]
			sheet.ForArea(area.ID, len(area.Questions))
			for q := range area.Questions {
				steps = append(steps, step{domain: dom, area: area, question: q})
			}
		}
	}

	r := &RunnerScreen{
		doc:         doc,
		info:        info,
		sel:         sel,
		sheet:       sheet,
		cache:       cache,
		assessments: assessments,
		recommender: recommender,
		steps:       steps,
	}
	r.pos = r.firstUnanswered()
	r.loadChoice()
	return r
}

// firstUnanswered returns the position to resume at, or the final step
// when everything is already answered.
func (r *RunnerScreen) firstUnanswered() int {
	for i, st := range r.steps {
		row := r.sheet[st.area.ID]
		if st.question < len(row) && row[st.question] == assessment.Unanswered {
			return i
		}
	}
	if len(r.steps) > 0 {
		return len(r.steps) - 1
	}
	return 0
}

// loadChoice rebuilds the answer component for the current step,
// pre-selecting a previously given answer.
func (r *RunnerScreen) loadChoice() {
	if r.pos >= len(r.steps) {
		return
	}
	st := r.steps[r.pos]
	r.choice = components.NewAnswerChoice(st.area.Questions[st.question].Text)
	if row := r.sheet[st.area.ID]; st.question < len(row) {
		switch row[st.question] {
		case assessment.Yes:
			r.choice.Selected = 0
		case assessment.No:
			r.choice.Selected = 1
		}
	}
}

func (r *RunnerScreen) Init() tea.Cmd {
	return nil
}

func (r *RunnerScreen) Title() string {
	return "Assessment"
}

func (r *RunnerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y/N", Description: "Answer"},
		{Key: "→", Description: "Skip"},
		{Key: "←", Description: "Previous"},
		{Key: "F", Description: "Finish"},
	}
}

func (r *RunnerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(r.steps) == 0 {
		return r, r.finish()
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "right":
			// Skip: leave the answer as-is and move on.
			return r, r.advance()
		case "left":
			if r.pos > 0 {
				r.pos--
				r.loadChoice()
			}
			return r, nil
		case "f", "F":
			return r, r.finish()
		}
	}

	var cmd tea.Cmd
	r.choice, cmd = r.choice.Update(msg)

	if r.choice.Answered() {
		st := r.steps[r.pos]
		ans := assessment.No
		if r.choice.Yes() {
			ans = assessment.Yes
		}
		r.sheet.Set(st.area.ID, st.question, ans)
		r.persist()
		return r, r.advance()
	}

	return r, cmd
}

// advance moves to the next question, or replaces the screen with the
// report when the run is done.
func (r *RunnerScreen) advance() tea.Cmd {
	if r.pos+1 >= len(r.steps) {
		return r.finish()
	}
	r.pos++
	r.loadChoice()
	return nil
}

func (r *RunnerScreen) finish() tea.Cmd {
	rep := report.New(r.doc, r.info, r.sel, r.sheet, r.cache, r.assessments, r.recommender)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: rep}
	}
}

// persist saves the sheet so an interrupted run can resume. Best
// effort: a failed save only costs resumability.
func (r *RunnerScreen) persist() {
	if r.cache != nil {
		_ = r.cache.Save(statecache.KeyAnswers, r.sheet)
	}
}

func (r *RunnerScreen) View(width, height int) string {
	if len(r.steps) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No questions selected.")
	}

	st := r.steps[r.pos]

	var b strings.Builder
	b.WriteString("\n")

	// Breadcrumb: domain / area.
	crumb := fmt.Sprintf("%s  ›  %s", st.domain.Name, st.area.Name)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(crumb)))
	b.WriteString("\n\n")

	// Progress across the full run.
	answered := 0
	for _, s := range r.steps {
		if row := r.sheet[s.area.ID]; s.question < len(row) && row[s.question] != assessment.Unanswered {
			answered++
		}
	}
	barWidth := min(width-20, 50)
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", answered, len(r.steps)),
		float64(answered)/float64(len(r.steps)),
		true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n\n")

	// The question itself.
	card := theme.Card.Width(min(width-8, 72)).Render(r.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
