package assessment

import "github.com/sdutta/afsmeter/internal/framework"

// DomainSelection tracks a single domain's inclusion state. Selected is
// derived: it must be true iff at least one area flag is true. Edits can
// leave it stale; Validate restores the invariant.
type DomainSelection struct {
	Selected bool            `json:"selected"`
	Areas    map[string]bool `json:"areas"`
}

// Selection maps domain IDs to their selection state.
type Selection map[string]*DomainSelection

// DefaultSelection returns a selection with every domain and area
// included. Used as the initial state and for "select all".
func DefaultSelection(doc *framework.Document) Selection {
	sel := make(Selection, len(doc.Domains))
	for _, dom := range doc.Domains {
		areas := make(map[string]bool, len(dom.Areas))
		for _, a := range dom.Areas {
			areas[a.ID] = true
		}
		sel[dom.ID] = &DomainSelection{
			Selected: len(areas) > 0,
			Areas:    areas,
		}
	}
	return sel
}

// SelectedDomains derives the active subset of the document: domains in
// document order, each with only its selected areas, omitting domains
// with no selected areas. Only the per-area flags are consulted — the
// domain-level Selected flag is a UI convenience, not authoritative.
func SelectedDomains(doc *framework.Document, sel Selection) []framework.Domain {
	var out []framework.Domain
	for _, dom := range doc.Domains {
		ds := sel[dom.ID]
		if ds == nil {
			continue
		}
		var areas []framework.Area
		for _, a := range dom.Areas {
			if ds.Areas[a.ID] {
				areas = append(areas, a)
			}
		}
		if len(areas) == 0 {
			continue
		}
		out = append(out, dom.WithAreas(areas))
	}
	return out
}

// SelectedAreaIDs returns the IDs of all selected areas in document order.
func SelectedAreaIDs(doc *framework.Document, sel Selection) []string {
	var ids []string
	for _, dom := range SelectedDomains(doc, sel) {
		for _, a := range dom.Areas {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Validate repairs domain-level flags and reports overall validity.
// A domain marked Selected with zero true areas is corrected to false.
// Returns true iff at least one area is selected anywhere. Callers must
// run this before trusting Selected flags; it is idempotent.
func (sel Selection) Validate() bool {
	total := 0
	for _, ds := range sel {
		count := 0
		for _, on := range ds.Areas {
			if on {
				count++
			}
		}
		if ds.Selected && count == 0 {
			ds.Selected = false
		}
		total += count
	}
	return total > 0
}

// ToggleArea flips one area's flag and re-derives the domain flag.
func (sel Selection) ToggleArea(domainID, areaID string) {
	ds := sel[domainID]
	if ds == nil {
		return
	}
	ds.Areas[areaID] = !ds.Areas[areaID]
	ds.Selected = false
	for _, on := range ds.Areas {
		if on {
			ds.Selected = true
			break
		}
	}
}

// SetDomain sets every area in a domain to the given state.
func (sel Selection) SetDomain(dom framework.Domain, on bool) {
	ds := sel[dom.ID]
	if ds == nil {
		ds = &DomainSelection{Areas: make(map[string]bool, len(dom.Areas))}
		sel[dom.ID] = ds
	}
	for _, a := range dom.Areas {
		ds.Areas[a.ID] = on
	}
	ds.Selected = on && len(dom.Areas) > 0
}

// SelectionFromAreaIDs rebuilds a Selection from a flat list of area
// IDs, such as a stored payload's selectedAreas. Unknown IDs are
// ignored.
func SelectionFromAreaIDs(doc *framework.Document, ids []string) Selection {
	sel := ClearAll(doc)
	idx := doc.Index()
	for _, id := range ids {
		if ref, ok := idx[id]; ok {
			sel.ToggleArea(ref.Domain.ID, id)
		}
	}
	return sel
}

// ClearAll deselects everything, regenerating the state wholesale.
func ClearAll(doc *framework.Document) Selection {
	sel := make(Selection, len(doc.Domains))
	for _, dom := range doc.Domains {
		areas := make(map[string]bool, len(dom.Areas))
		for _, a := range dom.Areas {
			areas[a.ID] = false
		}
		sel[dom.ID] = &DomainSelection{Areas: areas}
	}
	return sel
}
