// Package normalize turns raw scraped text into the canonical forms the
// resolver and store work with: cleaned strings, absolute listed dates, and
// NZ region names.
package normalize

import "strings"

// encodingFixes repairs mojibake the source HTML ships with (UTF-8 bytes
// decoded as Latin-1, smart punctuation). Longer sequences come first so the
// bare "â€" fallback doesn't shadow them.
var encodingFixes = strings.NewReplacer(
	"â€œ", "\"", // opening curly quote
	"â€™", "'", // apostrophe
	"â€¢", "•", // bullet
	"â€¦", "...", // ellipsis
	"â€“", "-", // en dash
	"â€”", "-", // em dash
	"â€", "\"", // closing curly quote
	"Ã©", "é",
	"Ã¡", "á",
	"Ã­", "í",
	"Ã³", "ó",
	"Ãº", "ú",
	"Â£", "£", // pound sign
	"Â", "",
	"—", "-",
	"–", "-",
	" ", " ",
)

// CleanText fixes source encoding artifacts and collapses all runs of
// whitespace to single spaces.
func CleanText(s string) string {
	s = encodingFixes.Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// ForMatch reduces a string to the form used for fuzzy identity comparison:
// cleaned and case-folded, so cosmetic edits don't defeat matching.
func ForMatch(s string) string {
	return strings.ToLower(CleanText(s))
}

// DescriptionPrefix returns the first n characters (runes) of the matching
// form of a description. Descriptions are routinely truncated by the source,
// so only the prefix is comparable.
func DescriptionPrefix(desc string, n int) string {
	r := []rune(ForMatch(desc))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
