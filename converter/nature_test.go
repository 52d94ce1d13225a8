package converter

import "testing"

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"delivery", "pain livré ce matin", NatureLivraison},
		{"payment beats order", "paiement de la commande", NaturePaiement},
		{"invoice", "Facture envoyée", NaturePaiement},
		{"order", "cde de 12 cartons", NatureCommande},
		{"tasting with accents", "Dégustation au salon", NatureDegustation},
		{"appointment", "RDV pris jeudi", NatureRendezVous},
		{"mail", "envoyé un e-mail", NatureEmail},
		{"call", "appelé le gérant", NatureAppel},
		{"follow up", "à rappeler la semaine prochaine", NatureRelance},
		{"visit", "visite en boutique", NatureVisite},
		{"no answer", "absent, répondeur", NatureNonAbouti},
		{"ok", "OK pour la suite", NatureAbouti},
		{"fallback", "rien de particulier", NatureNote},
		{"substring does not match", "hotel du centre", NatureNote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyText(tt.text); got != tt.want {
				t.Errorf("ClassifyText(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_LegacyLabelWins(t *testing.T) {
	if got := Classify("Livraison", "colis remis"); got != NatureLivraison {
		t.Fatalf("expected Livraison, got %s", got)
	}
	if got := Classify("Non abouti", "appel"); got != NatureNonAbouti {
		t.Fatalf("expected NonAbouti, got %s", got)
	}
	if got := Classify("E-mail", "commande"); got != NatureEmail {
		t.Fatalf("expected Email, got %s", got)
	}
}

func TestClassify_NoteAndKdoUseText(t *testing.T) {
	if got := Classify("Note", "paiement reçu"); got != NaturePaiement {
		t.Fatalf("expected Paiement, got %s", got)
	}
	if got := Classify("Kdo", "bouteille offerte"); got != NatureNote {
		t.Fatalf("expected Note, got %s", got)
	}
}

func TestClassify_ResultIsAlwaysCanonical(t *testing.T) {
	for _, text := range []string{"", "???", "livraison", "ok", "zzz"} {
		if got := Classify("", text); !IsCanonicalNature(got) {
			t.Fatalf("Classify(%q) = %q is not canonical", text, got)
		}
	}
}

func TestCanonicalNatures(t *testing.T) {
	got := CanonicalNatures()
	if len(got) != 12 {
		t.Fatalf("expected 12 natures, got %d", len(got))
	}
	got[0] = "mutated"
	if CanonicalNatures()[0] != NatureLivraison {
		t.Fatalf("CanonicalNatures must return a copy")
	}
}
