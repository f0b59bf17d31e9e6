// Package framework defines the AFS assessment framework document:
// a fixed hierarchy of domains, each containing areas, each containing
// binary (yes/no) questions. The document is loaded once per session
// and never mutated.
package framework

import "slices"

// Document is the root of a framework configuration.
type Document struct {
	// Version is a semver string used for compatibility checks.
	Version string   `json:"version"`
	Name    string   `json:"name"`
	Domains []Domain `json:"domains"`
}

// Domain is a top-level grouping of related assessment areas.
type Domain struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Areas       []Area `json:"areas"`
}

// Area is a named cluster of yes/no questions within a domain.
// Area IDs are unique across the whole document, not just within
// their domain — selection and answer state are keyed by area ID alone.
type Area struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Question is a single yes/no prompt. Questions have no persistent ID;
// they are identified by their position within their area.
type Question struct {
	Text string `json:"text"`
}

// AreaRef locates an area within its domain.
type AreaRef struct {
	Domain *Domain
	Area   *Area
}

// AreaIndex maps area IDs to their location in the document.
type AreaIndex map[string]AreaRef

// Index builds an AreaIndex over the document. With duplicate area IDs
// (a malformed document that slipped past the loader) the last
// occurrence wins.
func (d *Document) Index() AreaIndex {
	idx := make(AreaIndex)
	for i := range d.Domains {
		dom := &d.Domains[i]
		for j := range dom.Areas {
			idx[dom.Areas[j].ID] = AreaRef{Domain: dom, Area: &dom.Areas[j]}
		}
	}
	return idx
}

// TotalQuestions returns the question count across all domains.
func (d *Document) TotalQuestions() int {
	n := 0
	for _, dom := range d.Domains {
		for _, a := range dom.Areas {
			n += len(a.Questions)
		}
	}
	return n
}

// AreaIDs returns all area IDs in document order.
func (d *Document) AreaIDs() []string {
	var ids []string
	for _, dom := range d.Domains {
		for _, a := range dom.Areas {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// DomainByID returns the domain with the given ID, or nil.
func (d *Document) DomainByID(id string) *Domain {
	for i := range d.Domains {
		if d.Domains[i].ID == id {
			return &d.Domains[i]
		}
	}
	return nil
}

// WithAreas returns a copy of the domain whose Areas field is replaced
// by the given subsequence. Used when deriving the selected subset of
// a document.
func (dom Domain) WithAreas(areas []Area) Domain {
	out := dom
	out.Areas = slices.Clone(areas)
	return out
}
