package render

import (
	"strings"
	"testing"
)

func TestDigits(t *testing.T) {
	t.Parallel()

	got := Digits(10)
	want := strings.Join([]string{
		"      __    ___",
		"     /_ |  / _ \\",
		"      | | | | | |",
		"      | | | | | |",
		"      | | | |_| |",
		"      |_|  \\___/",
	}, "\n")
	if got != want {
		t.Fatalf("Digits(10) =\n%s\nwant\n%s", got, want)
	}
}

func TestGlyphsShareHeight(t *testing.T) {
	t.Parallel()

	for c, g := range glyphs {
		width := len(g[0])
		for i, line := range g {
			if len(line) != width {
				t.Fatalf("glyph %q line %d has width %d, want %d", c, i, len(line), width)
			}
		}
	}
}

func TestBanner(t *testing.T) {
	t.Parallel()

	got := Banner("Dice:", 1, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != Height {
		t.Fatalf("banner has %d lines, want %d", len(lines), Height)
	}
	if !strings.HasPrefix(lines[Height/2], margin+"Dice:  ") {
		t.Fatalf("label line = %q", lines[Height/2])
	}
	if !strings.Contains(lines[Height-1], "|_|") || !strings.Contains(lines[Height-1], "|____|") {
		t.Fatalf("last line = %q, want glyphs for 1 and 2", lines[Height-1])
	}
	for i, line := range lines {
		if i != Height/2 && strings.TrimSpace(line) != "" && !strings.HasPrefix(line, margin+strings.Repeat(" ", len("Dice:")+2)) {
			t.Fatalf("line %d not padded: %q", i, line)
		}
	}
}
