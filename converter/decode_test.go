package converter

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func mustWindows1252(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDecode_PreferredEncodingIsUsedAsIs(t *testing.T) {
	raw := mustWindows1252(t, "Téléphone;Catégorie")
	text, name, diags := Decode(raw, "win1252")
	if text != "Téléphone;Catégorie" {
		t.Fatalf("unexpected text: %q", text)
	}
	if name != EncodingWindows1252 {
		t.Fatalf("expected windows-1252, got %q", name)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestDecode_LatinAliasResolvesThroughIndex(t *testing.T) {
	raw := mustWindows1252(t, "Dégustation")
	text, _, _ := Decode(raw, "latin1")
	if text != "Dégustation" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDecode_DetectsPlainUTF8(t *testing.T) {
	text, name, _ := Decode([]byte("\uFEFFNom;Téléphone"), "")
	if text != "Nom;Téléphone" || name != EncodingUTF8 {
		t.Fatalf("unexpected decode: %q %q", text, name)
	}
}

func TestDecode_MojibakeFallsBackToWindows1252(t *testing.T) {
	// "é" encoded twice: the UTF-8 bytes C3 A9 read as Windows-1252 are "Ã©".
	raw := []byte("Caf\xc3\x83\xc2\xa9")
	text, name, _ := Decode(raw, "")
	if name != EncodingWindows1252 {
		t.Fatalf("expected windows-1252 fallback, got %q (%q)", name, text)
	}
}

func TestDecode_InvalidUTF8FallsBackToWindows1252(t *testing.T) {
	raw := mustWindows1252(t, "Ville;Fréjus")
	text, name, _ := Decode(raw, "")
	if text != "Ville;Fréjus" || name != EncodingWindows1252 {
		t.Fatalf("unexpected decode: %q %q", text, name)
	}
}

func TestDecode_UnknownPreferredEncodingIsDiagnosed(t *testing.T) {
	text, name, diags := Decode([]byte("Nom"), "klingon-8")
	if text != "Nom" || name != EncodingUTF8 {
		t.Fatalf("unexpected decode: %q %q", text, name)
	}
	if len(diags) != 1 || diags[0].Reason != ReasonUnknownEncoding {
		t.Fatalf("expected one unknown-encoding diagnostic, got %v", diags)
	}
}
