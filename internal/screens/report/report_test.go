package report

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/sdutta/afsmeter/internal/assessment"
	"github.com/sdutta/afsmeter/internal/framework"
	"github.com/sdutta/afsmeter/internal/orginfo"
	"github.com/sdutta/afsmeter/internal/recommend"
	"github.com/sdutta/afsmeter/internal/screen"
	"github.com/sdutta/afsmeter/internal/store"
)

// mockAssessmentRepo implements store.AssessmentRepo for testing.
type mockAssessmentRepo struct {
	saved []*store.AssessmentRecord
	err   error
}

func (m *mockAssessmentRepo) Save(_ context.Context, rec *store.AssessmentRecord) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockAssessmentRepo) Latest(_ context.Context) (*store.AssessmentRecord, error) {
	if len(m.saved) == 0 {
		return nil, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *mockAssessmentRepo) List(_ context.Context, _ int) ([]store.AssessmentRecord, error) {
	var out []store.AssessmentRecord
	for _, r := range m.saved {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockAssessmentRepo) Count(_ context.Context) (int, error) {
	return len(m.saved), nil
}

func testDoc() *framework.Document {
	return &framework.Document{
		Version: "2.1.0",
		Name:    "AFS Assessment Framework",
		Domains: []framework.Domain{
			{ID: "GOV", Name: "Governance", Areas: []framework.Area{
				{ID: "GOV-1", Name: "Policy", Questions: make([]framework.Question, 2)},
			}},
		},
	}
}

func fullYesSheet() assessment.AnswerSheet {
	sheet := assessment.NewAnswerSheet()
	sheet.ForArea("GOV-1", 2)
	sheet.Set("GOV-1", 0, assessment.Yes)
	sheet.Set("GOV-1", 1, assessment.Yes)
	return sheet
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestNew_ScoresTheSheet(t *testing.T) {
	doc := testDoc()
	r := New(doc, orginfo.OrgInfo{}, assessment.DefaultSelection(doc), fullYesSheet(),
		nil, nil, nil)

	if r.report.OverallScore != assessment.MaxScore {
		t.Errorf("overall = %v, want %v", r.report.OverallScore, assessment.MaxScore)
	}
	if !r.report.Completion.IsComplete {
		t.Error("fully answered run should be complete")
	}
}

func TestSubmit_SavesRecordAndClearsState(t *testing.T) {
	doc := testDoc()
	repo := &mockAssessmentRepo{}
	info := orginfo.OrgInfo{Organization: "Acme", Team: "Platform", AssessorName: "Pat"}
	r := New(doc, info, assessment.DefaultSelection(doc), fullYesSheet(), nil, repo, nil)

	var scr screen.Screen = r
	_, cmd := scr.Update(keyPress('s'))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg := cmd()
	saved, ok := msg.(savedMsg)
	if !ok || saved.Err != nil {
		t.Fatalf("submit result = %#v", msg)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(repo.saved))
	}
	rec := repo.saved[0]
	if rec.Organization != "Acme" || rec.FrameworkVersion != "2.1.0" {
		t.Errorf("record header = %+v", rec)
	}
	if rec.OverallScore != assessment.MaxScore {
		t.Errorf("record score = %v", rec.OverallScore)
	}
	if len(rec.Payload.SelectedAreas) != 1 || rec.Payload.SelectedAreas[0] != "GOV-1" {
		t.Errorf("payload areas = %v", rec.Payload.SelectedAreas)
	}

	// Feeding the result back marks the screen saved.
	scr, _ = r.Update(saved)
	rr := scr.(*ReportScreen)
	if !rr.saved {
		t.Error("screen not marked saved")
	}
	if _, c := rr.Update(keyPress('s')); c != nil {
		t.Error("second submit should be a no-op")
	}
}

func TestSubmit_FailureIsShown(t *testing.T) {
	doc := testDoc()
	repo := &mockAssessmentRepo{err: context.DeadlineExceeded}
	r := New(doc, orginfo.OrgInfo{}, assessment.DefaultSelection(doc), fullYesSheet(),
		nil, repo, nil)

	_, cmd := r.Update(keyPress('s'))
	msg := cmd()
	scr, _ := r.Update(msg)
	rr := scr.(*ReportScreen)

	if rr.saved {
		t.Error("failed submit must not mark the screen saved")
	}
	if rr.saveErr == "" {
		t.Error("expected a visible save error")
	}
	if !strings.Contains(rr.View(80, 40), "Submit failed") {
		t.Error("save error not rendered")
	}
}

func TestNewReadOnly_RebuildsFromPayload(t *testing.T) {
	doc := testDoc()
	rec := &store.AssessmentRecord{
		Payload: assessment.Payload{
			SelectedAreas: []string{"GOV-1"},
			Answers: map[string][]assessment.Answer{
				"GOV-1": {assessment.Yes, assessment.No},
			},
		},
	}

	r := NewReadOnly(doc, rec)
	if !r.saved {
		t.Error("read-only view should start saved")
	}
	if r.report.OverallScore != 2.5 {
		t.Errorf("rescored overall = %v, want 2.5", r.report.OverallScore)
	}
	if _, cmd := r.Update(keyPress('s')); cmd != nil {
		t.Error("submit should be disabled on a read-only report")
	}
}

func TestRecommendations_Rendered(t *testing.T) {
	doc := testDoc()
	r := New(doc, orginfo.OrgInfo{}, assessment.DefaultSelection(doc), fullYesSheet(),
		nil, nil, nil)

	scr, _ := r.Update(recsMsg{Recs: []recommend.Recommendation{{
		AreaID:   "GOV-1",
		Title:    "Adopt a written AI policy",
		Priority: "high",
		Actions:  []string{"Draft the policy"},
	}}})
	rr := scr.(*ReportScreen)

	view := rr.View(100, 60)
	if !strings.Contains(view, "Adopt a written AI policy") {
		t.Error("recommendation title not rendered")
	}
	if !strings.Contains(view, "[high]") {
		t.Error("priority tag not rendered")
	}
}

func TestView_ScrollClamps(t *testing.T) {
	doc := testDoc()
	r := New(doc, orginfo.OrgInfo{}, assessment.DefaultSelection(doc), fullYesSheet(),
		nil, nil, nil)

	for i := 0; i < 100; i++ {
		s, _ := r.Update(keyPress('j'))
		r = s.(*ReportScreen)
	}
	if r.View(80, 24) == "" {
		t.Error("over-scrolled view went blank")
	}
}
