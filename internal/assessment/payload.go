package assessment

import "github.com/sdutta/afsmeter/internal/framework"

// Payload is the serializable snapshot submitted when a run finishes.
// OrgInfo is an opaque passenger: the engine carries it, the submission
// layer owns its shape.
type Payload struct {
	OrgInfo       any                 `json:"orgInfo"`
	SelectedAreas []string            `json:"selectedAreas"`
	Answers       map[string][]Answer `json:"answers"`
}

// BuildPayload assembles the submission snapshot. Selected areas come
// out in document order, and only answer rows for selected areas are
// included.
func BuildPayload(orgInfo any, doc *framework.Document, sel Selection, sheet AnswerSheet) Payload {
	ids := SelectedAreaIDs(doc, sel)

	answers := make(map[string][]Answer, len(ids))
	for _, id := range ids {
		if row, ok := sheet[id]; ok {
			cp := make([]Answer, len(row))
			copy(cp, row)
			answers[id] = cp
		}
	}

	return Payload{
		OrgInfo:       orgInfo,
		SelectedAreas: ids,
		Answers:       answers,
	}
}
