package converter

import "strings"

const (
	fieldDelimiter = ';'
	quoteChar      = '"'
)

// ParseDelimited splits semicolon-delimited text into rows. Quoted fields may
// contain delimiters and newlines, "" inside quotes is a literal quote and
// carriage returns are dropped everywhere. Rows are not checked against the
// header arity.
func ParseDelimited(content string) [][]string {
	if content == "" {
		return nil
	}
	var (
		rows     [][]string
		cur      []string
		field    strings.Builder
		inQuotes bool
	)
	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch == '\r' {
			continue
		}
		if inQuotes {
			if ch == quoteChar {
				if i+1 < len(runes) && runes[i+1] == quoteChar {
					field.WriteRune(quoteChar)
					i++
				} else {
					inQuotes = false
				}
				continue
			}
			field.WriteRune(ch)
			continue
		}
		switch ch {
		case quoteChar:
			inQuotes = true
		case fieldDelimiter:
			cur = append(cur, field.String())
			field.Reset()
		case '\n':
			cur = append(cur, field.String())
			field.Reset()
			rows = append(rows, cur)
			cur = nil
		default:
			field.WriteRune(ch)
		}
	}
	cur = append(cur, field.String())
	rows = append(rows, cur)
	return rows
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if Sanitize(cell) != "" {
			return false
		}
	}
	return true
}
