package converter

// Sheet names in workbook order.
const (
	SheetContacts      = "Contacts"
	SheetEvents        = "Events"
	SheetLabels        = "Labels"
	SheetActivite      = "Activite"
	SheetNature        = "Nature"
	SheetContactLabels = "ContactLabels"
)

var sheetOrder = []string{SheetContacts, SheetEvents, SheetLabels, SheetActivite, SheetNature, SheetContactLabels}

var sheetColumns = map[string][]string{
	SheetContacts:      {"Id", "Nom", "ActiviteId", "Ville", "Contact", "Telephone", "Mail", "Observations", "Adresse", "Horaires", "Rappel", "Labels"},
	SheetEvents:        {"Id", "Date", "NatureId", "Attendus", "DateTraitement", "Resultat", "ContactId", "ContactName"},
	SheetLabels:        {"Id", "Label", "Color"},
	SheetActivite:      {"Id", "Label"},
	SheetNature:        {"Id", "Label"},
	SheetContactLabels: {"ContactId", "LabelId"},
}

// SheetOrder returns the sheet names in the order they are written.
func SheetOrder() []string {
	return append([]string(nil), sheetOrder...)
}

// SheetColumns returns the header row of a sheet, or nil for an unknown sheet.
func SheetColumns(sheet string) []string {
	return append([]string(nil), sheetColumns[sheet]...)
}

type Contact struct {
	Id           string
	Nom          string
	ActiviteId   string
	Ville        string
	Contact      string
	Telephone    string
	Mail         string
	Observations string
	Adresse      string
	Horaires     string
	Rappel       string
	// Labels is the comma-joined list of label ids, kept for convenience
	// next to the ContactLabels junction.
	Labels string
}

type Event struct {
	Id             string
	Date           string
	NatureId       string
	Attendus       string
	DateTraitement string
	Resultat       string
	ContactId      string
	ContactName    string
}

type Label struct {
	Id    string
	Label string
	Color string
}

type Activite struct {
	Id    string
	Label string
}

type Nature struct {
	Id    string
	Label string
}

type ContactLabel struct {
	ContactId string
	LabelId   string
}

// Tables holds the six output tables of one conversion.
type Tables struct {
	Contacts      []Contact
	Events        []Event
	Labels        []Label
	Activites     []Activite
	Natures       []Nature
	ContactLabels []ContactLabel
}

func (c Contact) values() []string {
	return []string{c.Id, c.Nom, c.ActiviteId, c.Ville, c.Contact, c.Telephone, c.Mail, c.Observations, c.Adresse, c.Horaires, c.Rappel, c.Labels}
}

func (e Event) values() []string {
	return []string{e.Id, e.Date, e.NatureId, e.Attendus, e.DateTraitement, e.Resultat, e.ContactId, e.ContactName}
}

func (l Label) values() []string         { return []string{l.Id, l.Label, l.Color} }
func (a Activite) values() []string      { return []string{a.Id, a.Label} }
func (n Nature) values() []string        { return []string{n.Id, n.Label} }
func (cl ContactLabel) values() []string { return []string{cl.ContactId, cl.LabelId} }

// sheetRows returns the data rows of a sheet in column order.
func (t *Tables) sheetRows(sheet string) [][]string {
	var out [][]string
	switch sheet {
	case SheetContacts:
		for _, c := range t.Contacts {
			out = append(out, c.values())
		}
	case SheetEvents:
		for _, e := range t.Events {
			out = append(out, e.values())
		}
	case SheetLabels:
		for _, l := range t.Labels {
			out = append(out, l.values())
		}
	case SheetActivite:
		for _, a := range t.Activites {
			out = append(out, a.values())
		}
	case SheetNature:
		for _, n := range t.Natures {
			out = append(out, n.values())
		}
	case SheetContactLabels:
		for _, cl := range t.ContactLabels {
			out = append(out, cl.values())
		}
	}
	return out
}
