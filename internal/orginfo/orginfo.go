// Package orginfo holds the organization/assessor details attached to a
// submitted assessment. The scoring engine treats this as an opaque
// passenger; only the wizard's org-info step and the submission record
// care about its shape.
package orginfo

import (
	"fmt"
	"strings"
)

// OrgInfo identifies who ran the assessment and for which team.
type OrgInfo struct {
	Organization  string `json:"organization"`
	Team          string `json:"team,omitempty"`
	AssessorName  string `json:"assessor_name"`
	AssessorEmail string `json:"assessor_email,omitempty"`
}

// Validate checks the fields the wizard requires before submission.
// Email is optional but must look like an address when present.
func (o OrgInfo) Validate() error {
	if strings.TrimSpace(o.Organization) == "" {
		return fmt.Errorf("organization is required")
	}
	if strings.TrimSpace(o.AssessorName) == "" {
		return fmt.Errorf("assessor name is required")
	}
	if e := strings.TrimSpace(o.AssessorEmail); e != "" {
		at := strings.Index(e, "@")
		if at < 1 || at == len(e)-1 || !strings.Contains(e[at:], ".") {
			return fmt.Errorf("assessor email %q is not a valid address", e)
		}
	}
	return nil
}

// Display returns a one-line "Org / Team (Assessor)" summary.
func (o OrgInfo) Display() string {
	s := o.Organization
	if o.Team != "" {
		s += " / " + o.Team
	}
	if o.AssessorName != "" {
		s += " (" + o.AssessorName + ")"
	}
	return s
}
