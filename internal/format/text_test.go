package format

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exactly10!", 10, "exactly10!"},
		{"truncated", "this is a long title", 10, "this is..."},
		{"tiny", "abcdef", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateWideRunes(t *testing.T) {
	// CJK characters occupy two columns each.
	got := Truncate("日本語のタイトル", 9)
	if DisplayWidth(got) > 9 {
		t.Fatalf("truncated string too wide: %q (%d)", got, DisplayWidth(got))
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Fatalf("expected %q, got %q", "ab   ", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Fatalf("padding must not shorten: got %q", got)
	}
}
