package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sdutta/afsmeter/internal/assessment"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRecord() *AssessmentRecord {
	return &AssessmentRecord{
		ID:               uuid.NewString(),
		Organization:     "Acme",
		Team:             "Platform",
		AssessorName:     "Pat",
		FrameworkName:    "AFS Assessment Framework",
		FrameworkVersion: "2.1.0",
		OverallScore:     3.75,
		MaturityLevel:    "Integrated",
		Payload: assessment.Payload{
			OrgInfo:       map[string]any{"organization": "Acme"},
			SelectedAreas: []string{"D1-A", "D1-B"},
			Answers: map[string][]assessment.Answer{
				"D1-A": {assessment.Yes, assessment.No, assessment.Unanswered},
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestSaveAndLatest(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.Assessments()

	if rec, err := repo.Latest(ctx); err != nil || rec != nil {
		t.Fatalf("Latest on empty store = (%v, %v), want (nil, nil)", rec, err)
	}

	want := sampleRecord()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("Latest = %+v, want id %s", got, want.ID)
	}
	if got.OverallScore != 3.75 || got.MaturityLevel != "Integrated" {
		t.Errorf("score fields = %v %q", got.OverallScore, got.MaturityLevel)
	}

	// Payload survives the round trip, including tri-state answers.
	row := got.Payload.Answers["D1-A"]
	if len(row) != 3 || row[0] != assessment.Yes || row[1] != assessment.No || row[2] != assessment.Unanswered {
		t.Errorf("payload answers = %v", row)
	}
}

func TestList_NewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	repo := st.Assessments()

	older := sampleRecord()
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := sampleRecord()

	if err := repo.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}

	recs, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ID != newer.ID {
		t.Error("List is not newest-first")
	}

	limited, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("List(1) returned %d records", len(limited))
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 2 {
		t.Errorf("Count = (%d, %v), want (2, nil)", n, err)
	}
}

func TestEventRepo_StatsAccumulate(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	events := st.Events()

	err := events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku", Purpose: "recommendations",
		InputTokens: 900, OutputTokens: 250, LatencyMs: 1200, Success: true,
	})
	if err != nil {
		t.Fatalf("AppendLLMRequest: %v", err)
	}
	err = events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku", Purpose: "recommendations",
		Success: false, ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatal(err)
	}

	stats, err := events.LLMStats(ctx)
	if err != nil {
		t.Fatalf("LLMStats: %v", err)
	}
	if stats.Requests != 2 || stats.Failures != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.InputTokens != 900 || stats.OutputTokens != 250 {
		t.Errorf("token totals = %+v", stats)
	}
}

func TestEventRepo_UsageGroupedByModel(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	events := st.Events()

	for i := 0; i < 3; i++ {
		err := events.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "anthropic", Model: "claude-haiku-4-5",
			InputTokens: 100, OutputTokens: 50, LatencyMs: 1000, Success: true,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	err := events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini",
		InputTokens: 10, OutputTokens: 5, LatencyMs: 400, Success: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	usage, err := events.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByModel: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("got %d rows, want 2", len(usage))
	}
	// Busiest model first.
	if usage[0].Model != "claude-haiku-4-5" || usage[0].Calls != 3 {
		t.Errorf("first row = %+v", usage[0])
	}
	if usage[0].InputTokens != 300 || usage[0].OutputTokens != 150 {
		t.Errorf("token sums = %+v", usage[0])
	}
	if usage[0].AvgLatencyMs != 1000 {
		t.Errorf("avg latency = %d, want 1000", usage[0].AvgLatencyMs)
	}
	if usage[1].Provider != "openai" {
		t.Errorf("second row = %+v", usage[1])
	}
}
