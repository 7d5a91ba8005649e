package domain

import "fmt"

// TriageStatus is the human-assigned review tag. It is owned by the external
// triage UI: the ingest core never sets or clears it, and the store only
// writes it through SetTriageStatus on the UI's behalf.
type TriageStatus string

const (
	TriageNone      TriageStatus = ""    // untagged (NULL in the store)
	TriageYes       TriageStatus = "yes" // worth applying
	TriageShortlist TriageStatus = "gsv" // give second viewing
	TriageNo        TriageStatus = "no"  // rejected
)

// ParseTriageStatus validates a raw status string. Empty string is valid and
// means "clear the tag".
func ParseTriageStatus(s string) (TriageStatus, error) {
	st := TriageStatus(s)
	switch st {
	case TriageNone, TriageYes, TriageShortlist, TriageNo:
		return st, nil
	}
	return "", fmt.Errorf("unknown triage status %q", s)
}
