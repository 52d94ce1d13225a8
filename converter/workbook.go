package converter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteWorkbook serializes t as one xlsx document: one sheet per table in
// SheetOrder, header row first.
func WriteWorkbook(w io.Writer, t *Tables) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, sheet := range sheetOrder {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, sheetColumns[sheet], t.sheetRows(sheet), headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	_, err = f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// Problem is a contract or referential violation found in a workbook.
type Problem struct {
	Sheet   string
	Row     int
	Message string
}

func (p Problem) String() string {
	if p.Row > 0 {
		return fmt.Sprintf("%s row %d: %s", p.Sheet, p.Row, p.Message)
	}
	return fmt.Sprintf("%s: %s", p.Sheet, p.Message)
}

// ReadWorkbook loads a converted workbook back into tables. Columns are
// matched by header name so a reordered sheet still reads; sheet or header
// deviations from the contract are returned as problems.
func ReadWorkbook(r io.Reader) (*Tables, []Problem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var problems []Problem
	sheets := f.GetSheetList()
	if !equalStrings(sheets, sheetOrder) {
		problems = append(problems, Problem{Sheet: "workbook", Message: fmt.Sprintf("sheet order %v, want %v", sheets, sheetOrder)})
	}

	t := &Tables{}
	present := make(map[string]bool, len(sheets))
	for _, s := range sheets {
		present[s] = true
	}
	for _, sheet := range sheetOrder {
		if !present[sheet] {
			problems = append(problems, Problem{Sheet: sheet, Message: "missing sheet"})
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, problems, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			problems = append(problems, Problem{Sheet: sheet, Message: "missing header row"})
			continue
		}
		if !equalStrings(rows[0], sheetColumns[sheet]) {
			problems = append(problems, Problem{Sheet: sheet, Row: 1, Message: fmt.Sprintf("columns %v, want %v", rows[0], sheetColumns[sheet])})
		}
		pos := make(map[string]int, len(rows[0]))
		for i, name := range rows[0] {
			pos[name] = i
		}
		for _, row := range rows[1:] {
			get := func(col string) string {
				i, ok := pos[col]
				if !ok || i >= len(row) {
					return ""
				}
				return row[i]
			}
			t.appendRow(sheet, get)
		}
	}
	return t, problems, nil
}

func (t *Tables) appendRow(sheet string, get func(string) string) {
	switch sheet {
	case SheetContacts:
		t.Contacts = append(t.Contacts, Contact{
			Id: get("Id"), Nom: get("Nom"), ActiviteId: get("ActiviteId"), Ville: get("Ville"),
			Contact: get("Contact"), Telephone: get("Telephone"), Mail: get("Mail"),
			Observations: get("Observations"), Adresse: get("Adresse"), Horaires: get("Horaires"),
			Rappel: get("Rappel"), Labels: get("Labels"),
		})
	case SheetEvents:
		t.Events = append(t.Events, Event{
			Id: get("Id"), Date: get("Date"), NatureId: get("NatureId"), Attendus: get("Attendus"),
			DateTraitement: get("DateTraitement"), Resultat: get("Resultat"),
			ContactId: get("ContactId"), ContactName: get("ContactName"),
		})
	case SheetLabels:
		t.Labels = append(t.Labels, Label{Id: get("Id"), Label: get("Label"), Color: get("Color")})
	case SheetActivite:
		t.Activites = append(t.Activites, Activite{Id: get("Id"), Label: get("Label")})
	case SheetNature:
		t.Natures = append(t.Natures, Nature{Id: get("Id"), Label: get("Label")})
	case SheetContactLabels:
		t.ContactLabels = append(t.ContactLabels, ContactLabel{ContactId: get("ContactId"), LabelId: get("LabelId")})
	}
}

// VerifyTables checks that every foreign key resolves and that ids are unique
// within their table. Row numbers are 1-based sheet rows (header is row 1).
func VerifyTables(t *Tables) []Problem {
	var problems []Problem
	dup := func(sheet string, row int, id string) {
		problems = append(problems, Problem{Sheet: sheet, Row: row, Message: fmt.Sprintf("duplicate id %q", id)})
	}
	missing := func(sheet string, row int, what, id string) {
		problems = append(problems, Problem{Sheet: sheet, Row: row, Message: fmt.Sprintf("%s %q does not resolve", what, id)})
	}

	activites := make(map[string]bool, len(t.Activites))
	for i, a := range t.Activites {
		if activites[a.Id] {
			dup(SheetActivite, i+2, a.Id)
		}
		activites[a.Id] = true
	}
	natures := make(map[string]bool, len(t.Natures))
	for i, n := range t.Natures {
		if natures[n.Id] {
			dup(SheetNature, i+2, n.Id)
		}
		natures[n.Id] = true
	}
	labels := make(map[string]bool, len(t.Labels))
	for i, l := range t.Labels {
		if labels[l.Id] {
			dup(SheetLabels, i+2, l.Id)
		}
		labels[l.Id] = true
	}

	contacts := make(map[string]bool, len(t.Contacts))
	for i, c := range t.Contacts {
		row := i + 2
		if contacts[c.Id] {
			dup(SheetContacts, row, c.Id)
		}
		contacts[c.Id] = true
		if c.ActiviteId != "" && !activites[c.ActiviteId] {
			missing(SheetContacts, row, "ActiviteId", c.ActiviteId)
		}
		for _, lid := range splitTags(c.Labels) {
			if !labels[lid] {
				missing(SheetContacts, row, "label", lid)
			}
		}
	}

	events := make(map[string]bool, len(t.Events))
	for i, e := range t.Events {
		row := i + 2
		if events[e.Id] {
			dup(SheetEvents, row, e.Id)
		}
		events[e.Id] = true
		if !natures[e.NatureId] {
			missing(SheetEvents, row, "NatureId", e.NatureId)
		}
		if !contacts[e.ContactId] {
			missing(SheetEvents, row, "ContactId", e.ContactId)
		}
	}

	for i, cl := range t.ContactLabels {
		row := i + 2
		if !contacts[cl.ContactId] {
			missing(SheetContactLabels, row, "ContactId", cl.ContactId)
		}
		if !labels[cl.LabelId] {
			missing(SheetContactLabels, row, "LabelId", cl.LabelId)
		}
	}
	return problems
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
