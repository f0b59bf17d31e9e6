package framework

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/mod/semver"
)

// MinVersion is the oldest framework document version this binary
// understands.
const MinVersion = "v2.0.0"

//go:embed afs_framework.json
var defaultDocument []byte

// Parse decodes and validates a framework document from raw JSON.
func Parse(raw []byte) (*Document, error) {
	if err := validateShape(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode framework document: %w", err)
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	if err := checkAreaIDs(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and parses a framework document from disk.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read framework document: %w", err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Default returns the embedded AFS framework document.
func Default() *Document {
	doc, err := Parse(defaultDocument)
	if err != nil {
		// The embedded document is validated by tests; failing to parse
		// it is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded framework document: %v", err))
	}
	return doc
}

// checkVersion verifies the document version is valid semver and not
// older than MinVersion. Documents may omit the leading "v".
func checkVersion(version string) error {
	v := version
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid framework version %q", version)
	}
	if semver.Compare(v, MinVersion) < 0 {
		return fmt.Errorf("framework version %s is older than minimum supported %s", version, MinVersion)
	}
	return nil
}

// checkAreaIDs enforces global uniqueness of area IDs. Selection and
// answer state are keyed by area ID alone, so a duplicate would silently
// merge two areas' state.
func checkAreaIDs(doc *Document) error {
	seen := make(map[string]string)
	for _, dom := range doc.Domains {
		for _, a := range dom.Areas {
			if prev, ok := seen[a.ID]; ok {
				return fmt.Errorf("duplicate area id %q (domains %s and %s)", a.ID, prev, dom.ID)
			}
			seen[a.ID] = dom.ID
		}
	}
	return nil
}
