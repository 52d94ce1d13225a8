package converter

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	in := "\uFEFF  Jean\u00A0Dupont\u200B  "
	if got := Sanitize(in); got != "Jean Dupont" {
		t.Fatalf("unexpected sanitize: %q", got)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Boulangerie":    "boulangerie",
		"Non abouti":     "non-abouti",
		"  Bio   local ": "-bio-local-",
		"RendezVous":     "rendezvous",
		"Dégustation":    "dgustation",
		"":               "autre",
		"###":            "autre",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugIsIdempotent(t *testing.T) {
	for _, in := range []string{"Épicerie fine", "Bio", "a b c", "###", strings.Repeat("x", 80)} {
		once := Slug(in)
		if twice := Slug(once); twice != once {
			t.Fatalf("Slug not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSlugTruncates(t *testing.T) {
	if got := Slug(strings.Repeat("a", 60)); len(got) != 40 {
		t.Fatalf("expected 40 chars, got %d", len(got))
	}
}

func TestFoldText(t *testing.T) {
	if got := FoldText("Dégustation RÉGLÉE"); got != "degustation reglee" {
		t.Fatalf("unexpected fold: %q", got)
	}
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("same"), 24)
	b := HashContent([]byte("same"), 24)
	if a != b || len(a) != 24 {
		t.Fatalf("unexpected hash: %q %q", a, b)
	}
	if len(HashContent([]byte("same"), 0)) != 64 {
		t.Fatalf("expected full digest when hexLen is 0")
	}
}
