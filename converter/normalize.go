package converter

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugMaxLen   = 40
	slugFallback = "autre"
)

var invisibleReplacer = strings.NewReplacer(
	"\uFEFF", "",  // BOM
	"\u00A0", " ", // NBSP
	"\u200B", "",  // zero-width space
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
)

// Sanitize strips BOM, NBSP and zero-width characters from a raw cell and trims it.
func Sanitize(input string) string {
	return strings.TrimSpace(invisibleReplacer.Replace(input))
}

// Slug turns a label into a stable identifier. Non-ASCII letters are dropped,
// not transliterated, so "Dégustation" becomes "dgustation".
func Slug(input string) string {
	s := strings.ToLower(input)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	if s == "" {
		return slugFallback
	}
	return s
}

// FoldText lowercases input and removes combining marks so keyword matching
// ignores accents ("Dégustation" -> "degustation").
func FoldText(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		out = input
	}
	return strings.ToLower(out)
}

// HashContent returns the hex SHA-256 of b, truncated to hexLen when hexLen is
// positive and shorter than the full digest.
func HashContent(b []byte, hexLen int) string {
	sum := sha256.Sum256(b)
	full := hex.EncodeToString(sum[:])
	if hexLen <= 0 || hexLen >= len(full) {
		return full
	}
	return full[:hexLen]
}
