package converter

import "regexp"

// Canonical event natures. The classifier never emits anything else.
const (
	NatureLivraison   = "Livraison"
	NatureCommande    = "Commande"
	NaturePaiement    = "Paiement"
	NatureDegustation = "Degustation"
	NatureRendezVous  = "RendezVous"
	NatureEmail       = "Email"
	NatureAppel       = "Appel"
	NatureRelance     = "Relance"
	NatureVisite      = "Visite"
	NatureAbouti      = "Abouti"
	NatureNonAbouti   = "NonAbouti"
	NatureNote        = "Note"
)

var canonicalNatures = []string{
	NatureLivraison, NatureCommande, NaturePaiement, NatureDegustation, NatureRendezVous, NatureEmail,
	NatureAppel, NatureRelance, NatureVisite, NatureAbouti, NatureNonAbouti, NatureNote,
}

// CanonicalNatures returns the closed set of nature labels, in seed order.
func CanonicalNatures() []string {
	return append([]string(nil), canonicalNatures...)
}

// IsCanonicalNature reports whether label belongs to the canonical set.
func IsCanonicalNature(label string) bool {
	for _, n := range canonicalNatures {
		if n == label {
			return true
		}
	}
	return false
}

type natureRule struct {
	nature  string
	pattern *regexp.Regexp
}

// natureRules is evaluated top to bottom on accent-folded lowercase text and
// the first match wins. Paiement sits above Commande: "paiement de la
// commande" is a payment.
var natureRules = []natureRule{
	{NatureLivraison, regexp.MustCompile(`\blivr\w*`)},
	{NaturePaiement, regexp.MustCompile(`\b(factur\w*|paiements?|paye\w*|regl\w*|avoirs?|acomptes?)\b`)},
	{NatureCommande, regexp.MustCompile(`\b(command\w*|cdes?|orders?)\b`)},
	{NatureDegustation, regexp.MustCompile(`\b(degust\w*|tasting)\b`)},
	{NatureRendezVous, regexp.MustCompile(`\b(rendez[- ]?vous|rdv)\b`)},
	{NatureEmail, regexp.MustCompile(`\b(e-?mails?|mail\w*|courriels?)\b`)},
	{NatureAppel, regexp.MustCompile(`\b(appel\w*|telephon\w*|tel)\b`)},
	{NatureRelance, regexp.MustCompile(`\b(relanc\w*|rappel\w*|recontact\w*)\b`)},
	{NatureVisite, regexp.MustCompile(`\b(visit\w*|passage)\b`)},
	{NatureNonAbouti, regexp.MustCompile(`\b(non[- ]abouti\w*|absente?s?|occupee?s?|injoignables?|repondeur|messagerie|pas de reponse)\b`)},
	{NatureAbouti, regexp.MustCompile(`\b(abouti\w*|ok)\b`)},
}

// legacyLabelNatures maps the folded legacy label prefix of a noCRM comment
// to its nature. "note" and "kdo" are absent on purpose: their text goes
// through the keyword rules.
var legacyLabelNatures = map[string]string{
	"livraison":   NatureLivraison,
	"abouti":      NatureAbouti,
	"non abouti":  NatureNonAbouti,
	"e-mail":      NatureEmail,
	"email":       NatureEmail,
	"mail":        NatureEmail,
	"rendez-vous": NatureRendezVous,
	"degustation": NatureDegustation,
	"appel":       NatureAppel,
	"commande":    NatureCommande,
	"relance":     NatureRelance,
	"visite":      NatureVisite,
}

// ClassifyText picks the nature of free text using the ordered keyword rules.
func ClassifyText(text string) string {
	folded := FoldText(text)
	for _, rule := range natureRules {
		if rule.pattern.MatchString(folded) {
			return rule.nature
		}
	}
	return NatureNote
}

// Classify resolves the nature of one comment. A legacy label with a known
// nature wins over the text; any result outside the canonical set is
// clamped to Note.
func Classify(label string, text string) string {
	nature, ok := legacyLabelNatures[FoldText(label)]
	if !ok {
		nature = ClassifyText(text)
	}
	if !IsCanonicalNature(nature) {
		return NatureNote
	}
	return nature
}
