package domain

// Candidate is one normalized scraped posting, ready for reconciliation
// against the store. Every field except URL is optional; empty string means
// the source did not supply it (stored as NULL).
type Candidate struct {
	URL         string
	Title       string
	Company     string
	Location    string
	Region      string
	Salary      string
	DateListed  string // absolute dd/mm/yyyy after normalization; empty = unknown
	JobType     string
	Description string
}
