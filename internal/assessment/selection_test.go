package assessment

import (
	"testing"

	"github.com/sdutta/afsmeter/internal/framework"
)

func testDoc() *framework.Document {
	return &framework.Document{
		Version: "2.0.0",
		Domains: []framework.Domain{
			{ID: "D1", Name: "One", Areas: []framework.Area{
				{ID: "D1-A", Name: "A", Questions: make([]framework.Question, 2)},
				{ID: "D1-B", Name: "B", Questions: make([]framework.Question, 3)},
			}},
			{ID: "D2", Name: "Two", Areas: []framework.Area{
				{ID: "D2-C", Name: "C", Questions: make([]framework.Question, 1)},
			}},
			{ID: "D3", Name: "Empty", Areas: nil},
		},
	}
}

func TestDefaultSelection_EverythingSelected(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)

	for _, dom := range doc.Domains {
		ds := sel[dom.ID]
		if ds == nil {
			t.Fatalf("domain %s missing from selection", dom.ID)
		}
		for _, a := range dom.Areas {
			if !ds.Areas[a.ID] {
				t.Errorf("area %s not selected by default", a.ID)
			}
		}
	}
	if !sel.Validate() {
		t.Error("default selection of a non-empty document should validate true")
	}
}

func TestDefaultSelection_EmptyDomainNotSelected(t *testing.T) {
	sel := DefaultSelection(testDoc())
	if sel["D3"].Selected {
		t.Error("domain with no areas should not be Selected")
	}
}

func TestSelectedDomains_FiltersAndPreservesOrder(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)
	sel.ToggleArea("D1", "D1-A") // deselect one area of D1
	sel.SetDomain(doc.Domains[1], false)

	got := SelectedDomains(doc, sel)
	if len(got) != 1 {
		t.Fatalf("got %d domains, want 1", len(got))
	}
	if got[0].ID != "D1" {
		t.Errorf("domain = %s, want D1", got[0].ID)
	}
	if len(got[0].Areas) != 1 || got[0].Areas[0].ID != "D1-B" {
		t.Errorf("areas = %v, want [D1-B]", got[0].Areas)
	}
}

func TestSelectedDomains_IgnoresDomainFlag(t *testing.T) {
	// The domain-level flag is not authoritative: a stale Selected=true
	// with no true areas must not produce output.
	doc := testDoc()
	sel := ClearAll(doc)
	sel["D1"].Selected = true

	if got := SelectedDomains(doc, sel); len(got) != 0 {
		t.Errorf("got %d domains, want 0", len(got))
	}
}

func TestSelectedDomains_DoesNotMutateDocument(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)
	sel.ToggleArea("D1", "D1-A")

	_ = SelectedDomains(doc, sel)
	if len(doc.Domains[0].Areas) != 2 {
		t.Error("SelectedDomains mutated the document")
	}
}

func TestValidate_RepairsStaleDomainFlag(t *testing.T) {
	doc := testDoc()
	sel := ClearAll(doc)
	sel["D2"].Selected = true

	if sel.Validate() {
		t.Error("Validate = true with nothing selected")
	}
	if sel["D2"].Selected {
		t.Error("stale Selected flag not repaired")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)
	sel.ToggleArea("D2", "D2-C")
	sel["D2"].Selected = true // corrupt

	first := sel.Validate()
	second := sel.Validate()
	if first != second {
		t.Errorf("Validate not idempotent: %v then %v", first, second)
	}
	if sel["D2"].Selected {
		t.Error("repair did not stick across calls")
	}
}

func TestValidate_InvariantHolds(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)
	sel.ToggleArea("D1", "D1-A")
	sel.ToggleArea("D1", "D1-B")
	sel["D1"].Selected = true // corrupt

	sel.Validate()
	for id, ds := range sel {
		hasTrue := false
		for _, on := range ds.Areas {
			if on {
				hasTrue = true
				break
			}
		}
		if ds.Selected != hasTrue {
			t.Errorf("domain %s: Selected=%v but has-true-area=%v", id, ds.Selected, hasTrue)
		}
	}
}

func TestToggleArea_MaintainsDomainFlag(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)

	sel.ToggleArea("D2", "D2-C")
	if sel["D2"].Selected {
		t.Error("Selected should drop when last area is toggled off")
	}
	sel.ToggleArea("D2", "D2-C")
	if !sel["D2"].Selected {
		t.Error("Selected should rise when an area is toggled on")
	}
}

func TestSelectionFromAreaIDs_RoundTrip(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)
	sel.ToggleArea("D1", "D1-A")

	got := SelectionFromAreaIDs(doc, SelectedAreaIDs(doc, sel))
	if got["D1"].Areas["D1-A"] || !got["D1"].Areas["D1-B"] || !got["D2"].Areas["D2-C"] {
		t.Errorf("rebuilt selection does not match: %+v", got)
	}
	if !got["D1"].Selected || !got["D2"].Selected {
		t.Error("domain flags not restored")
	}
}

func TestSelectionFromAreaIDs_UnknownIDsIgnored(t *testing.T) {
	doc := testDoc()
	sel := SelectionFromAreaIDs(doc, []string{"D1-B", "GONE-1", ""})

	if !sel["D1"].Areas["D1-B"] {
		t.Error("known ID not selected")
	}
	if sel["D2"].Selected || sel["D2"].Areas["D2-C"] {
		t.Error("unknown IDs leaked into other domains")
	}
}

func TestSelectedAreaIDs_DocumentOrder(t *testing.T) {
	doc := testDoc()
	sel := DefaultSelection(doc)
	got := SelectedAreaIDs(doc, sel)
	want := []string{"D1-A", "D1-B", "D2-C"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
