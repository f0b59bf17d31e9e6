package framework

import (
	"strings"
	"testing"
)

const minimalDoc = `{
  "version": "2.0.0",
  "domains": [
    {
      "id": "D1",
      "name": "Domain One",
      "areas": [
        {
          "id": "D1-A",
          "name": "Area A",
          "questions": [{"text": "Q1?"}, {"text": "Q2?"}]
        }
      ]
    }
  ]
}`

func TestParse_Minimal(t *testing.T) {
	doc, err := Parse([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Domains) != 1 {
		t.Fatalf("got %d domains, want 1", len(doc.Domains))
	}
	if doc.Domains[0].Areas[0].ID != "D1-A" {
		t.Errorf("area id = %q, want D1-A", doc.Domains[0].Areas[0].ID)
	}
	if got := doc.TotalQuestions(); got != 2 {
		t.Errorf("TotalQuestions = %d, want 2", got)
	}
}

func TestParse_RejectsMissingAreaID(t *testing.T) {
	raw := strings.Replace(minimalDoc, `"id": "D1-A",`, "", 1)
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatal("Parse accepted an area without an id")
	}
}

func TestParse_RejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("Parse accepted invalid JSON")
	}
}

func TestParse_RejectsDuplicateAreaIDs(t *testing.T) {
	raw := `{
	  "version": "2.0.0",
	  "domains": [
	    {"id": "D1", "name": "One", "areas": [{"id": "X", "name": "A", "questions": []}]},
	    {"id": "D2", "name": "Two", "areas": [{"id": "X", "name": "B", "questions": []}]}
	  ]
	}`
	_, err := Parse([]byte(raw))
	if err == nil {
		t.Fatal("Parse accepted duplicate area ids")
	}
	if !strings.Contains(err.Error(), "duplicate area id") {
		t.Errorf("error = %v, want duplicate area id mention", err)
	}
}

func TestParse_RejectsOldVersion(t *testing.T) {
	raw := strings.Replace(minimalDoc, `"version": "2.0.0"`, `"version": "1.4.0"`, 1)
	if _, err := Parse([]byte(raw)); err == nil {
		t.Fatal("Parse accepted a pre-2.0 document")
	}
}

func TestParse_AcceptsVersionWithLeadingV(t *testing.T) {
	raw := strings.Replace(minimalDoc, `"version": "2.0.0"`, `"version": "v2.3.1"`, 1)
	if _, err := Parse([]byte(raw)); err != nil {
		t.Fatalf("Parse rejected v-prefixed version: %v", err)
	}
}

func TestDefault_ParsesAndIndexes(t *testing.T) {
	doc := Default()
	if len(doc.Domains) == 0 {
		t.Fatal("default document has no domains")
	}

	idx := doc.Index()
	for _, dom := range doc.Domains {
		for _, a := range dom.Areas {
			ref, ok := idx[a.ID]
			if !ok {
				t.Fatalf("area %s missing from index", a.ID)
			}
			if ref.Domain.ID != dom.ID {
				t.Errorf("area %s indexed under domain %s, want %s", a.ID, ref.Domain.ID, dom.ID)
			}
			if len(a.Questions) == 0 {
				t.Errorf("area %s has no questions", a.ID)
			}
		}
	}
}

func TestDomainByID(t *testing.T) {
	doc, err := Parse([]byte(minimalDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.DomainByID("D1") == nil {
		t.Error("DomainByID(D1) = nil")
	}
	if doc.DomainByID("nope") != nil {
		t.Error("DomainByID(nope) != nil")
	}
}
