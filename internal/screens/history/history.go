package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/router"
	"github.com/sdutta/afsmeter/internal/screen"
	"github.com/sdutta/afsmeter/internal/screens/report"
	"github.com/sdutta/afsmeter/internal/store"
	"github.com/sdutta/afsmeter/internal/ui/layout"
	"github.com/sdutta/afsmeter/internal/ui/theme"
)

type historyLoadedMsg struct {
	Records []store.AssessmentRecord
	Err     error
}

// HistoryScreen lists submitted assessments, newest first.
type HistoryScreen struct {
	doc         *framework.Document
	assessments store.AssessmentRepo
	records     []store.AssessmentRecord
	selected    int
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(doc *framework.Document, assessments store.AssessmentRepo) *HistoryScreen {
	return &HistoryScreen{
		doc:         doc,
		assessments: assessments,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.assessments.List(context.Background(), 50)
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open report"},
		{Key: "↑↓", Description: "Navigate"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected < len(s.records) {
				rec := s.records[s.selected]
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: report.NewReadOnly(s.doc, &rec)}
				}
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No submitted assessments yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.CreatedAt.Format("Jan 02, 2006")
		org := rec.Organization
		if rec.Team != "" {
			org += " / " + rec.Team
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-30s  %.2f/%.1f  %s",
			prefix, dateStr, truncate(org, 30),
			rec.OverallScore, assessment.MaxScore, rec.MaturityLevel)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
