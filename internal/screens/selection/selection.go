// Package selection holds the domain and area picker, the first step
// of the assessment wizard.
package selection

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/router"
	"github.com/sdutta/afsmeter/internal/screen"
	orginfoscreen "github.com/sdutta/afsmeter/internal/screens/orginfo"
	"github.com/sdutta/afsmeter/internal/statecache"
	"github.com/sdutta/afsmeter/internal/store"
	"github.com/sdutta/afsmeter/internal/ui/components"
	"github.com/sdutta/afsmeter/internal/ui/layout"
	"github.com/sdutta/afsmeter/internal/ui/theme"
)

// row maps a checklist index back to the document.
type row struct {
	domainID string
	areaID   string // empty for domain rows
}

// SelectionScreen lets the user pick which domains and areas to assess.
type SelectionScreen struct {
	doc         *framework.Document
	sel         assessment.Selection
	cache       *statecache.Cache
	assessments store.AssessmentRepo
	recommender *recommend.Service

	list   components.Checklist
	rows   []row
	errMsg string
}

var _ screen.Screen = (*SelectionScreen)(nil)
var _ screen.KeyHintProvider = (*SelectionScreen)(nil)

// New builds the picker. A cached selection from an interrupted run is
// restored; otherwise everything starts selected.
func New(doc *framework.Document, cache *statecache.Cache, assessments store.AssessmentRepo, recommender *recommend.Service) *SelectionScreen {
	sel := assessment.DefaultSelection(doc)
	if cache != nil {
		var cached assessment.Selection
		if cache.Load(statecache.KeySelection, &cached) && cached.Validate() {
			sel = cached
		}
	}

	s := &SelectionScreen{
		doc:         doc,
		sel:         sel,
		cache:       cache,
		assessments: assessments,
		recommender: recommender,
	}
	s.rebuildList()
	return s
}

// rebuildList syncs the checklist rows from the selection state,
// keeping the cursor in place.
func (s *SelectionScreen) rebuildList() {
	cursor := s.list.Cursor

	var items []components.ChecklistItem
	s.rows = s.rows[:0]

	for _, dom := range s.doc.Domains {
		ds := s.sel[dom.ID]
		items = append(items, components.ChecklistItem{
			ID:      dom.ID,
			Label:   fmt.Sprintf("%s (%s)", dom.Name, dom.ID),
			Checked: ds != nil && ds.Selected,
		})
		s.rows = append(s.rows, row{domainID: dom.ID})

		for _, area := range dom.Areas {
			checked := ds != nil && ds.Areas[area.ID]
			items = append(items, components.ChecklistItem{
				ID:      area.ID,
				Label:   fmt.Sprintf("%s — %d questions", area.Name, len(area.Questions)),
				Checked: checked,
				Indent:  true,
			})
			s.rows = append(s.rows, row{domainID: dom.ID, areaID: area.ID})
		}
	}

	s.list = components.NewChecklist(items)
	s.list.Cursor = cursor
	if s.list.Cursor >= len(items) {
		s.list.Cursor = len(items) - 1
	}
	s.list.OnToggle = s.toggle
}

// toggle flips the row at index: a domain row cascades to all of its
// areas, an area row re-derives the domain flag.
func (s *SelectionScreen) toggle(index int) tea.Cmd {
	if index < 0 || index >= len(s.rows) {
		return nil
	}
	r := s.rows[index]

	if r.areaID == "" {
		if dom := s.doc.DomainByID(r.domainID); dom != nil {
			ds := s.sel[r.domainID]
			s.sel.SetDomain(*dom, ds == nil || !ds.Selected)
		}
	} else {
		s.sel.ToggleArea(r.domainID, r.areaID)
	}

	s.errMsg = ""
	s.rebuildList()
	return nil
}

func (s *SelectionScreen) Init() tea.Cmd {
	return nil
}

func (s *SelectionScreen) Title() string {
	return "Select Scope"
}

func (s *SelectionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "A", Description: "All"},
		{Key: "X", Description: "None"},
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *SelectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "a", "A":
			s.sel = assessment.DefaultSelection(s.doc)
			s.errMsg = ""
			s.rebuildList()
			return s, nil
		case "x", "X":
			s.sel = assessment.ClearAll(s.doc)
			s.errMsg = ""
			s.rebuildList()
			return s, nil
		case "enter":
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// submit validates the selection and moves on to the org info form.
func (s *SelectionScreen) submit() tea.Cmd {
	if !s.sel.Validate() {
		s.errMsg = "Select at least one area to assess."
		s.rebuildList()
		return nil
	}

	if s.cache != nil {
		_ = s.cache.Save(statecache.KeySelection, s.sel)
	}

	next := orginfoscreen.New(s.doc, s.sel, s.cache, s.assessments, s.recommender)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *SelectionScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Choose the domains and areas to assess")))
	b.WriteString("\n\n")

	count := len(assessment.SelectedAreaIDs(s.doc, s.sel))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render(fmt.Sprintf("%d areas selected", count))))
	b.WriteString("\n\n")

	b.WriteString(s.list.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Negative.Render(s.errMsg)))
	}

	return b.String()
}
