package workbook

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxSheetNameRunes = 31
	unknownClub       = "Unknown Club"
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sheetNames hands out sheet names that are legal and unique within one
// workbook. Uniqueness is case-insensitive, as in spreadsheet applications.
type sheetNames struct {
	used map[string]struct{}
}

func newSheetNames() *sheetNames {
	return &sheetNames{used: make(map[string]struct{})}
}

// claim returns a legal, unused name derived from raw. Collisions get a
// " (2)", " (3)" ... suffix with the base shortened to keep within 31 runes.
func (n *sheetNames) claim(raw string) string {
	base := sanitizeSheetName(raw)
	name := base
	for i := 2; n.taken(name); i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = trimEdges(truncateRunes(base, maxSheetNameRunes-utf8.RuneCountInString(suffix))) + suffix
	}
	n.used[strings.ToLower(name)] = struct{}{}
	return name
}

func (n *sheetNames) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}

func sanitizeSheetName(raw string) string {
	s := trimEdges(sheetNameReplacer.Replace(raw))
	s = trimEdges(truncateRunes(s, maxSheetNameRunes))
	if s == "" {
		return unknownClub
	}
	return s
}

// trimEdges strips spaces and single quotes from both ends until neither
// remains; a sheet name may not start or end with a quote.
func trimEdges(s string) string {
	for {
		t := strings.Trim(strings.TrimSpace(s), "'")
		if t == s {
			return s
		}
		s = t
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
