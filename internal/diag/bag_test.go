package diag

import (
	"testing"

	"csclean/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	b := NewBag(2)
	for i := range 4 {
		b.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar, Primary: source.Span{Start: uint32(i), End: uint32(i + 1)}})
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
	if b.Dropped() != 2 {
		t.Fatalf("expected 2 dropped, got %d", b.Dropped())
	}
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatalf("severity predicates mismatch")
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	if got := NewBag(1 << 20).Cap(); got != 65535 {
		t.Fatalf("expected clamp to 65535, got %d", got)
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar, Primary: source.Span{Start: 9, End: 10}})
	b.Add(Diagnostic{Severity: SevWarning, Code: LexUnterminatedString, Primary: source.Span{Start: 1, End: 4}})
	b.Add(Diagnostic{Severity: SevError, Code: LexTokenTooLong, Primary: source.Span{Start: 1, End: 4}})
	b.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar, Primary: source.Span{Start: 9, End: 10}})

	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items after dedup, got %d", len(items))
	}
	if items[0].Code != LexTokenTooLong || items[1].Code != LexUnterminatedString || items[2].Code != LexUnknownChar {
		t.Fatalf("unexpected order: %v, %v, %v", items[0].Code, items[1].Code, items[2].Code)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnterminatedBlockComment, "LEX1003"},
		{SynUnterminatedUsing, "SYN2001"},
		{IOInputTooLarge, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unknown code must fall back to the generic title")
	}
}

func TestDiagnosticTitleFallsBackToCode(t *testing.T) {
	d := Diagnostic{Severity: SevWarning, Code: LexBadNumber}
	if d.Title() != "Bad number" {
		t.Errorf("got %q", d.Title())
	}
	d.Message = "bad hex literal"
	if d.Title() != "bad hex literal" {
		t.Errorf("got %q", d.Title())
	}
	if SevWarning.String() != "WARNING" || Severity(9).String() != "UNKNOWN" {
		t.Errorf("unexpected severity names")
	}
}
