package selection

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/router"
	"github.com/sdutta/afsmeter/internal/screen"
)

func testDoc() *framework.Document {
	qs := func(n int) []framework.Question {
		out := make([]framework.Question, n)
		for i := range out {
			out[i].Text = "Do you?"
		}
		return out
	}
	return &framework.Document{
		Version: "2.1.0",
		Name:    "AFS Assessment Framework",
		Domains: []framework.Domain{
			{ID: "GOV", Name: "Governance", Areas: []framework.Area{
				{ID: "GOV-1", Name: "Policy", Questions: qs(2)},
				{ID: "GOV-2", Name: "Risk", Questions: qs(1)},
			}},
			{ID: "DAT", Name: "Data", Areas: []framework.Area{
				{ID: "DAT-1", Name: "Quality", Questions: qs(2)},
			}},
		},
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestNew_EverythingSelectedByDefault(t *testing.T) {
	s := New(testDoc(), nil, nil, nil)

	// One row per domain plus one per area.
	if len(s.rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(s.rows))
	}
	for _, it := range s.list.Items {
		if !it.Checked {
			t.Errorf("row %s not checked by default", it.ID)
		}
	}
}

func TestToggle_DomainRowCascades(t *testing.T) {
	s := New(testDoc(), nil, nil, nil)

	// Cursor starts on the GOV domain row.
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress(' '))
	ss := scr.(*SelectionScreen)

	if ss.sel["GOV"].Selected {
		t.Error("domain still selected after toggle")
	}
	if ss.sel["GOV"].Areas["GOV-1"] || ss.sel["GOV"].Areas["GOV-2"] {
		t.Error("domain toggle did not cascade to areas")
	}
	if !ss.sel["DAT"].Selected {
		t.Error("toggle leaked into another domain")
	}
}

func TestToggle_AreaRowRederivesDomainFlag(t *testing.T) {
	s := New(testDoc(), nil, nil, nil)

	// Down to GOV-1, toggle it off, down to GOV-2, toggle it off.
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(keyPress(' '))
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(keyPress(' '))
	ss := scr.(*SelectionScreen)

	if ss.sel["GOV"].Selected {
		t.Error("domain flag should drop when its last area is deselected")
	}
}

func TestSelectAllAndNone(t *testing.T) {
	s := New(testDoc(), nil, nil, nil)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('x'))
	ss := scr.(*SelectionScreen)
	for _, it := range ss.list.Items {
		if it.Checked {
			t.Fatalf("row %s still checked after x", it.ID)
		}
	}

	scr, _ = ss.Update(keyPress('a'))
	ss = scr.(*SelectionScreen)
	for _, it := range ss.list.Items {
		if !it.Checked {
			t.Fatalf("row %s not checked after a", it.ID)
		}
	}
}

func TestSubmit_EmptySelectionShowsError(t *testing.T) {
	s := New(testDoc(), nil, nil, nil)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('x'))
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SelectionScreen)

	if cmd != nil {
		t.Error("expected no navigation on invalid submit")
	}
	if ss.errMsg == "" {
		t.Error("expected an error message")
	}
	if !strings.Contains(ss.View(80, 24), ss.errMsg) {
		t.Error("error message not rendered")
	}
}

func TestSubmit_PushesOrgInfoForm(t *testing.T) {
	s := New(testDoc(), nil, nil, nil)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected a PushScreenMsg")
	}
}

func TestView_ShowsSelectedCount(t *testing.T) {
	doc := testDoc()
	s := New(doc, nil, nil, nil)
	s.sel = assessment.DefaultSelection(doc)
	s.sel.ToggleArea("DAT", "DAT-1")
	s.rebuildList()

	if !strings.Contains(s.View(80, 24), "2 areas selected") {
		t.Error("selected count not rendered")
	}
}
