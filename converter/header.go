package converter

// Field is a logical column of a noCRM export.
type Field string

const (
	FieldName        Field = "name"
	FieldID          Field = "id"
	FieldContact     Field = "contact"
	FieldPhone       Field = "phone"
	FieldMail        Field = "mail"
	FieldAddress     Field = "address"
	FieldPostalCode  Field = "postal_code"
	FieldCity        Field = "city"
	FieldHours       Field = "hours"
	FieldSite        Field = "site"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldReminder    Field = "reminder"
)

// defaultAliases lists the header names tried for each field, in order.
// Lookups are case-sensitive once headers are sanitized.
var defaultAliases = map[Field][]string{
	FieldName:        {"Lead", "Nom"},
	FieldID:          {"ID", "Id"},
	FieldContact:     {"Contact"},
	FieldPhone:       {"Téléphone", "Telephone"},
	FieldMail:        {"E-mail", "Mail"},
	FieldAddress:     {"Adresse"},
	FieldPostalCode:  {"Code postal"},
	FieldCity:        {"Ville"},
	FieldHours:       {"Horaires"},
	FieldSite:        {"Site"},
	FieldCategory:    {"Catégorie", "Categorie"},
	FieldDescription: {"Description"},
	FieldTags:        {"tags"},
	FieldReminder:    {"Rappel", "Date de rappel", "Date rappel"},
}

var knownFields = []Field{
	FieldName, FieldID, FieldContact, FieldPhone, FieldMail, FieldAddress, FieldPostalCode,
	FieldCity, FieldHours, FieldSite, FieldCategory, FieldDescription, FieldTags, FieldReminder,
}

// ParseField maps a config key such as "phone" to its Field.
func ParseField(name string) (Field, bool) {
	for _, f := range knownFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// HeaderIndex resolves logical fields to column positions of one export.
type HeaderIndex struct {
	positions map[string]int
	columns   map[Field][]int
	names     []string
}

// NewHeaderIndex builds the index from the header row. extra aliases are tried
// before the defaults of the same field. When a header name repeats, the last
// column wins.
func NewHeaderIndex(header []string, extra map[Field][]string) *HeaderIndex {
	h := &HeaderIndex{
		positions: make(map[string]int, len(header)),
		columns:   make(map[Field][]int, len(defaultAliases)),
		names:     make([]string, len(header)),
	}
	for i, name := range header {
		clean := Sanitize(name)
		h.names[i] = clean
		h.positions[clean] = i
	}
	for field, defaults := range defaultAliases {
		aliases := append(append([]string(nil), extra[field]...), defaults...)
		seen := make(map[int]struct{}, len(aliases))
		for _, alias := range aliases {
			pos, ok := h.positions[Sanitize(alias)]
			if !ok {
				continue
			}
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			h.columns[field] = append(h.columns[field], pos)
		}
	}
	return h
}

// Has reports whether any alias of f is present in the header.
func (h *HeaderIndex) Has(f Field) bool {
	return len(h.columns[f]) > 0
}

// Lookup returns the first non-empty value among the columns of f. ok is
// false when the export has no column for f at all.
func (h *HeaderIndex) Lookup(row []string, f Field) (string, bool) {
	cols := h.columns[f]
	if len(cols) == 0 {
		return "", false
	}
	for _, pos := range cols {
		if v := cell(row, pos); v != "" {
			return v, true
		}
	}
	return "", true
}

// Get is Lookup without the presence flag.
func (h *HeaderIndex) Get(row []string, f Field) string {
	v, _ := h.Lookup(row, f)
	return v
}

// ColumnName returns the sanitized header of column pos, or "" when the row
// is wider than the header.
func (h *HeaderIndex) ColumnName(pos int) string {
	if pos < 0 || pos >= len(h.names) {
		return ""
	}
	return h.names[pos]
}

func cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return Sanitize(row[pos])
}
