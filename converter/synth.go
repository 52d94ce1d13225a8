package converter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultSyntheticIDBase = 20000000
	DefaultLabelColor      = "gray"
)

// ErrEmptyInput is returned when the export has no header row to index.
var ErrEmptyInput = errors.New("empty input")

var tagSeparators = regexp.MustCompile(`[,;#]`)

var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// SynthesizeOptions tunes one conversion. Zero values pick the defaults.
type SynthesizeOptions struct {
	// SyntheticIDBase is added to the row index for rows without an ID column value.
	SyntheticIDBase int
	LabelColor      string
	// ExtraAliases are tried before the built-in header names of each field.
	ExtraAliases map[Field][]string
}

// eventIDs hands out evt_1, evt_2, ... for a single run.
type eventIDs struct {
	next int
}

func (a *eventIDs) allocate() string {
	a.next++
	return "evt_" + strconv.Itoa(a.next)
}

// tableBuilder accumulates the output tables of one run and keeps every
// foreign key resolvable by creating referenced rows on first use.
type tableBuilder struct {
	opts      SynthesizeOptions
	tables    Tables
	labels    map[string]struct{}
	activites map[string]struct{}
	natures   map[string]struct{}
	events    eventIDs
	diags     []Diagnostic
}

func newTableBuilder(opts SynthesizeOptions) *tableBuilder {
	if opts.SyntheticIDBase <= 0 {
		opts.SyntheticIDBase = DefaultSyntheticIDBase
	}
	if strings.TrimSpace(opts.LabelColor) == "" {
		opts.LabelColor = DefaultLabelColor
	}
	b := &tableBuilder{
		opts:      opts,
		labels:    make(map[string]struct{}),
		activites: make(map[string]struct{}),
		natures:   make(map[string]struct{}),
	}
	for _, n := range canonicalNatures {
		b.ensureNature(n)
	}
	return b
}

func (b *tableBuilder) ensureNature(label string) string {
	id := Slug(label)
	if _, ok := b.natures[id]; !ok {
		b.natures[id] = struct{}{}
		b.tables.Natures = append(b.tables.Natures, Nature{Id: id, Label: label})
	}
	return id
}

func (b *tableBuilder) ensureActivite(label string) string {
	id := Slug(label)
	if _, ok := b.activites[id]; !ok {
		b.activites[id] = struct{}{}
		b.tables.Activites = append(b.tables.Activites, Activite{Id: id, Label: label})
	}
	return id
}

func (b *tableBuilder) ensureLabel(label string) string {
	id := Slug(label)
	if _, ok := b.labels[id]; !ok {
		b.labels[id] = struct{}{}
		b.tables.Labels = append(b.tables.Labels, Label{Id: id, Label: label, Color: b.opts.LabelColor})
	}
	return id
}

// Synthesize turns parsed rows into the six output tables. Row 0 is the
// header. Per-row anomalies never fail the run; they come back as
// diagnostics. ctx is checked between rows.
func Synthesize(ctx context.Context, rows [][]string, opts SynthesizeOptions) (*Tables, []Diagnostic, error) {
	if len(rows) == 0 || isBlankRow(rows[0]) {
		return nil, nil, ErrEmptyInput
	}
	if ctx == nil {
		ctx = context.Background()
	}
	h := NewHeaderIndex(rows[0], opts.ExtraAliases)
	b := newTableBuilder(opts)
	for i := 1; i < len(rows); i++ {
		if err := ctx.Err(); err != nil {
			return nil, b.diags, fmt.Errorf("row %d: %w", i, err)
		}
		if isBlankRow(rows[i]) {
			continue
		}
		b.addRow(h, i, rows[i])
	}
	return &b.tables, b.diags, nil
}

func (b *tableBuilder) addRow(h *HeaderIndex, rowIndex int, row []string) {
	nom := h.Get(row, FieldName)
	id := h.Get(row, FieldID)
	if id == "" {
		id = strconv.Itoa(b.opts.SyntheticIDBase + rowIndex)
	}

	contact := Contact{
		Id:        id,
		Nom:       nom,
		Ville:     h.Get(row, FieldCity),
		Contact:   h.Get(row, FieldContact),
		Telephone: h.Get(row, FieldPhone),
		Mail:      h.Get(row, FieldMail),
		Adresse:   h.Get(row, FieldAddress),
		Horaires:  h.Get(row, FieldHours),
	}

	if categorie := h.Get(row, FieldCategory); categorie != "" {
		contact.ActiviteId = b.ensureActivite(categorie)
	}

	var labelIDs []string
	seen := make(map[string]struct{})
	for _, tag := range splitTags(h.Get(row, FieldTags)) {
		lid := b.ensureLabel(tag)
		if _, dup := seen[lid]; dup {
			continue
		}
		seen[lid] = struct{}{}
		labelIDs = append(labelIDs, lid)
		b.tables.ContactLabels = append(b.tables.ContactLabels, ContactLabel{ContactId: id, LabelId: lid})
	}
	contact.Labels = strings.Join(labelIDs, ",")

	contact.Observations = observations(h.Get(row, FieldSite), h.Get(row, FieldPostalCode), h.Get(row, FieldDescription))

	if raw := h.Get(row, FieldReminder); raw != "" {
		if ts, ok := parseReminder(raw); ok {
			contact.Rappel = ts.Format(IsoLayout)
		} else {
			b.diags = append(b.diags, Diagnostic{Row: rowIndex, Column: string(FieldReminder), Reason: ReasonInvalidReminder, Text: raw})
		}
	}

	b.tables.Contacts = append(b.tables.Contacts, contact)

	for col, raw := range row {
		value := Sanitize(raw)
		if value == "" {
			continue
		}
		comments, diags := ExtractComments(value)
		for _, d := range diags {
			d.Row = rowIndex
			d.Column = h.ColumnName(col)
			b.diags = append(b.diags, d)
		}
		for _, c := range comments {
			b.tables.Events = append(b.tables.Events, Event{
				Id:          b.events.allocate(),
				Date:        c.Date,
				NatureId:    b.ensureNature(c.Nature),
				Resultat:    c.Text,
				ContactId:   id,
				ContactName: nom,
			})
		}
	}
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range tagSeparators.Split(raw, -1) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func observations(site, postalCode, description string) string {
	var parts []string
	if site != "" {
		parts = append(parts, "Site: "+site)
	}
	if postalCode != "" {
		parts = append(parts, "CP: "+postalCode)
	}
	if description != "" {
		parts = append(parts, description)
	}
	return strings.Join(parts, "\n\n")
}

func parseReminder(s string) (time.Time, bool) {
	for _, layout := range reminderLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
