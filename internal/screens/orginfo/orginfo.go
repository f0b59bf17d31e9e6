// Package orginfo holds the organization detail form shown before the
// question runner.
package orginfo

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	info "github.com/sdutta/afsmeter/internal/orginfo"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/router"
	"github.com/sdutta/afsmeter/internal/screen"
	"github.com/sdutta/afsmeter/internal/screens/runner"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
	"github.com/sdutta/afsmeter/internal/ui/components"
	"github.com/sdutta/afsmeter/internal/ui/layout"
	"github.com/sdutta/afsmeter/internal/ui/theme"
)

var fieldLabels = []string{"Organization", "Team", "Assessor name", "Assessor email"}

// OrgInfoScreen collects who is running the assessment.
type OrgInfoScreen struct {
	doc         *framework.Document
	sel         assessment.Selection
	cache       *statecache.Cache
	assessments store.AssessmentRepo
	recommender *recommend.Service

	inputs  []components.TextInput
	focused int
	errMsg  string
}

var _ screen.Screen = (*OrgInfoScreen)(nil)
var _ screen.KeyHintProvider = (*OrgInfoScreen)(nil)

// New creates the form, pre-filled from the state cache when a
// previous run left details behind.
func New(doc *framework.Document, sel assessment.Selection, cache *statecache.Cache, assessments store.AssessmentRepo, recommender *recommend.Service) *OrgInfoScreen {
	var cached info.OrgInfo
	if cache != nil {
		cache.Load(statecache.KeyOrgInfo, &cached)
	}

	inputs := make([]components.TextInput, len(fieldLabels))
	values := []string{cached.Organization, cached.Team, cached.AssessorName, cached.AssessorEmail}
	for i, label := range fieldLabels {
		inputs[i] = components.NewTextInput(label+"...", false, 80)
		if values[i] != "" {
			inputs[i].Model.SetValue(values[i])
		}
		if i > 0 {
			inputs[i].Model.Blur()
		}
	}

	return &OrgInfoScreen{
		doc:         doc,
		sel:         sel,
		cache:       cache,
		assessments: assessments,
		recommender: recommender,
		inputs:      inputs,
	}
}

func (o *OrgInfoScreen) Init() tea.Cmd {
	return o.inputs[0].Init()
}

func (o *OrgInfoScreen) Title() string {
	return "Organization"
}

func (o *OrgInfoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
	}
}

func (o *OrgInfoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return o, o.focus((o.focused + 1) % len(o.inputs))
		case "shift+tab", "up":
			return o, o.focus((o.focused + len(o.inputs) - 1) % len(o.inputs))
		case "enter":
			if o.focused < len(o.inputs)-1 {
				return o, o.focus(o.focused + 1)
			}
			return o, o.submit()
		}
	}

	var cmd tea.Cmd
	o.inputs[o.focused], cmd = o.inputs[o.focused].Update(msg)
	return o, cmd
}

func (o *OrgInfoScreen) focus(i int) tea.Cmd {
	o.inputs[o.focused].Model.Blur()
	o.focused = i
	return o.inputs[i].Model.Focus()
}

// submit validates the form, caches it, and moves on to the runner.
func (o *OrgInfoScreen) submit() tea.Cmd {
	oi := o.collect()
	if err := oi.Validate(); err != nil {
		o.errMsg = err.Error()
		return nil
	}
	o.errMsg = ""

	if o.cache != nil {
		_ = o.cache.Save(statecache.KeyOrgInfo, oi)
	}

	next := runner.New(o.doc, oi, o.sel, assessment.NewAnswerSheet(), o.cache, o.assessments, o.recommender)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (o *OrgInfoScreen) collect() info.OrgInfo {
	return info.OrgInfo{
		Organization:  strings.TrimSpace(o.inputs[0].Value()),
		Team:          strings.TrimSpace(o.inputs[1].Value()),
		AssessorName:  strings.TrimSpace(o.inputs[2].Value()),
		AssessorEmail: strings.TrimSpace(o.inputs[3].Value()),
	}
}

func (o *OrgInfoScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Who is running this assessment?")))
	b.WriteString("\n\n")

	formWidth := min(width-8, 64)
	var form strings.Builder
	for i, label := range fieldLabels {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == o.focused {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		form.WriteString(style.Render(label))
		form.WriteString("\n")
		form.WriteString(o.inputs[i].View())
		form.WriteString("\n\n")
	}

	card := theme.Card.Width(formWidth).Render(strings.TrimRight(form.String(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	if o.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Negative.Render(o.errMsg)))
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
