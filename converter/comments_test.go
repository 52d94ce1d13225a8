package converter

import (
	"reflect"
	"testing"
)

func TestExtractComments_SingleEntry(t *testing.T) {
	got, diags := ExtractComments("[2024-01-15 10:30] Livraison: colis remis")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []Comment{{Date: "2024-01-15T10:30:00", Nature: NatureLivraison, Label: "Livraison", Text: "colis remis"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestExtractComments_MultiEntrySplitKeepsInnerSemicolons(t *testing.T) {
	got, _ := ExtractComments("[2024-01-01 09:00] Note: a; still same entry;[2024-01-02 09:00] Appel: b")
	if len(got) != 2 {
		t.Fatalf("expected 2 comments, got %d: %#v", len(got), got)
	}
	if got[0].Text != "a; still same entry" {
		t.Fatalf("unexpected first text: %q", got[0].Text)
	}
	if got[1].Nature != NatureAppel || got[1].Text != "b" || got[1].Date != "2024-01-02T09:00:00" {
		t.Fatalf("unexpected second comment: %#v", got[1])
	}
}

func TestExtractComments_InvalidDateIsSkipped(t *testing.T) {
	got, diags := ExtractComments("[2024-13-40 25:99] Note: bad;[2024-02-01 08:00] Visite: ok")
	if len(got) != 1 || got[0].Nature != NatureVisite {
		t.Fatalf("expected only the valid entry, got %#v", got)
	}
	if len(diags) != 1 || diags[0].Reason != ReasonInvalidDate {
		t.Fatalf("expected one invalid-date diagnostic, got %v", diags)
	}
}

func TestExtractComments_CellWithoutStampIsIgnored(t *testing.T) {
	got, diags := ExtractComments("Livraison: pas de date")
	if got != nil || diags != nil {
		t.Fatalf("expected nothing, got %#v %#v", got, diags)
	}
}

func TestExtractComments_LeadingTextIsDiagnosed(t *testing.T) {
	got, diags := ExtractComments("voir plus bas [2024-03-01 10:00] Appel: ok")
	if len(got) != 0 {
		t.Fatalf("expected no comments, got %#v", got)
	}
	if len(diags) != 1 || diags[0].Reason != ReasonNoTimestamp {
		t.Fatalf("expected a no-timestamp diagnostic, got %v", diags)
	}
}

func TestExtractComments_DashSeparatorAndNoLabel(t *testing.T) {
	got, _ := ExtractComments("[2024-05-06 14:00] - paiement de la commande")
	if len(got) != 1 {
		t.Fatalf("expected 1 comment, got %#v", got)
	}
	if got[0].Label != "" || got[0].Text != "paiement de la commande" || got[0].Nature != NaturePaiement {
		t.Fatalf("unexpected comment: %#v", got[0])
	}
}

func TestExtractComments_LabelWithoutColon(t *testing.T) {
	got, _ := ExtractComments("[2024-05-06 14:00] Non abouti   messagerie pleine")
	if len(got) != 1 || got[0].Nature != NatureNonAbouti || got[0].Text != "messagerie pleine" {
		t.Fatalf("unexpected comment: %#v", got)
	}
}

func TestExtractComments_LabelPrefixOfLongerWordIsKept(t *testing.T) {
	got, _ := ExtractComments("[2024-05-06 14:00] Appeler demain")
	if len(got) != 1 || got[0].Label != "" || got[0].Text != "Appeler demain" {
		t.Fatalf("unexpected comment: %#v", got)
	}
}

func TestSplitComments(t *testing.T) {
	got := SplitComments("[2024-01-01 09:00] a;[2024-01-02 09:00] b; ;")
	want := []string{"[2024-01-01 09:00] a", "[2024-01-02 09:00] b; ;"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
