package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	info "github.com/sdutta/afsmeter/internal/orginfo"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/router"
	"github.com/sdutta/afsmeter/internal/screen"
	"github.com/sdutta/afsmeter/internal/screens/history"
	"github.com/sdutta/afsmeter/internal/screens/report"
	"github.com/sdutta/afsmeter/internal/screens/runner"
	"github.com/sdutta/afsmeter/internal/screens/selection"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
	"github.com/sdutta/afsmeter/internal/ui/components"
	"github.com/sdutta/afsmeter/internal/ui/theme"
)

// Deps carries everything the home screen hands down the wizard.
type Deps struct {
	Doc         *framework.Document
	Cache       *statecache.Cache
	Assessments store.AssessmentRepo
	Recommender *recommend.Service
}

// HomeScreen is the entry menu of the application.
type HomeScreen struct {
	deps        Deps
	menu        components.Menu
	canResume   bool
	latest      *store.AssessmentRecord
	submitCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	// Probe the state cache for an interrupted run.
	var (
		cachedSel   assessment.Selection
		cachedSheet assessment.AnswerSheet
	)
	if deps.Cache != nil &&
		deps.Cache.Load(statecache.KeySelection, &cachedSel) &&
		deps.Cache.Load(statecache.KeyAnswers, &cachedSheet) &&
		cachedSel.Validate() {
		h.canResume = true
	}

	if deps.Assessments != nil {
		h.latest, _ = deps.Assessments.Latest(context.Background())
		h.submitCount, _ = deps.Assessments.Count(context.Background())
	}

	items := []components.MenuItem{
		{Label: "Start assessment", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: selection.New(deps.Doc, deps.Cache, deps.Assessments, deps.Recommender),
				}
			}
		}},
		{Label: "Resume assessment", Disabled: !h.canResume, Action: func() tea.Cmd {
			var oi info.OrgInfo
			if deps.Cache != nil {
				deps.Cache.Load(statecache.KeyOrgInfo, &oi)
			}
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: runner.New(deps.Doc, oi, cachedSel, cachedSheet,
						deps.Cache, deps.Assessments, deps.Recommender),
				}
			}
		}},
		{Label: "Last report", Disabled: h.latest == nil, Action: func() tea.Cmd {
			if h.latest == nil {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: report.NewReadOnly(deps.Doc, h.latest)}
			}
		}},
		{Label: "History", Disabled: deps.Assessments == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Doc, deps.Assessments)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Width(width).Render("AFS Self-Assessment")
	subtitle := theme.Subtitle.Width(width).Render(
		"Measure your organization's AI trustworthiness maturity")
	sections = append(sections, title+"\n"+subtitle)

	if h.deps.Doc != nil {
		stats := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Align(lipgloss.Center).
			Render(statsLine(h.deps.Doc, h.submitCount))
		sections = append(sections, stats)
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func statsLine(doc *framework.Document, submitted int) string {
	line := fmt.Sprintf("%d domains · %d areas · %d questions",
		len(doc.Domains), len(doc.AreaIDs()), doc.TotalQuestions())
	if submitted > 0 {
		line += fmt.Sprintf(" · %d submitted", submitted)
	}
	return line
}
