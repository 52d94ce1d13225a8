package converter

import (
	"regexp"
	"strings"
	"time"
)

// IsoLayout is the second-precision, zone-less timestamp written to the workbook.
const IsoLayout = "2006-01-02T15:04:05"

var (
	commentStampAnywhere = regexp.MustCompile(`\[\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}\]`)
	commentBoundary      = regexp.MustCompile(`;\[\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}\]`)
	commentLeadingStamp  = regexp.MustCompile(`^\[(\d{4}-\d{2}-\d{2})\s(\d{2}:\d{2})\]`)
	commentSeparator     = regexp.MustCompile(`^\s*[-–—]?\s*`)
	commentLegacyLabel   = regexp.MustCompile(`(?i)^(non abouti|livraison|abouti|e-mail|email|mail|rendez-vous|dégustation|degustation|appel|commande|relance|kdo|visite|note)\b\s*:?\s*`)
)

// Comment is one timestamped entry found in a cell.
type Comment struct {
	Date   string
	Nature string
	// Label is the legacy label prefix as written, empty when there was none.
	Label string
	Text  string
}

// HasComments reports whether cell holds at least one bracketed timestamp.
func HasComments(cell string) bool {
	return commentStampAnywhere.MatchString(cell)
}

// SplitComments cuts a cell at each semicolon that is directly followed by a
// new bracketed timestamp. Other semicolons belong to the entry text.
func SplitComments(cell string) []string {
	var chunks []string
	start := 0
	for _, loc := range commentBoundary.FindAllStringIndex(cell, -1) {
		chunks = appendChunk(chunks, cell[start:loc[0]])
		start = loc[0] + 1
	}
	return appendChunk(chunks, cell[start:])
}

func appendChunk(chunks []string, chunk string) []string {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return chunks
	}
	return append(chunks, chunk)
}

// ExtractComments returns every valid timestamped entry of cell. Chunks
// without a leading timestamp or with an impossible date are reported as
// diagnostics; Row and Column are left for the caller to fill in.
func ExtractComments(cell string) ([]Comment, []Diagnostic) {
	if !HasComments(cell) {
		return nil, nil
	}
	var (
		out   []Comment
		diags []Diagnostic
	)
	for _, chunk := range SplitComments(cell) {
		m := commentLeadingStamp.FindStringSubmatch(chunk)
		if m == nil {
			diags = append(diags, Diagnostic{Reason: ReasonNoTimestamp, Text: chunk})
			continue
		}
		ts, err := time.Parse("2006-01-02 15:04", m[1]+" "+m[2])
		if err != nil {
			diags = append(diags, Diagnostic{Reason: ReasonInvalidDate, Text: chunk})
			continue
		}

		rest := commentSeparator.ReplaceAllString(chunk[len(m[0]):], "")
		label := ""
		if lm := commentLegacyLabel.FindStringSubmatch(rest); lm != nil {
			label = lm[1]
			rest = rest[len(lm[0]):]
		}
		text := strings.TrimSpace(rest)
		out = append(out, Comment{
			Date:   ts.Format(IsoLayout),
			Nature: Classify(label, text),
			Label:  label,
			Text:   text,
		})
	}
	return out, diags
}
