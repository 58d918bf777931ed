// Package render draws numbers as six-line ASCII-art banners for the
// interactive game.
package render

import (
	"strconv"
	"strings"
)

// Height is the number of lines in every glyph.
const Height = 6

const margin = "     "

var glyphs = map[rune][Height]string{
	'0': {"  ___   ", " / _ \\  ", "| | | | ", "| | | | ", "| |_| | ", " \\___/  "},
	'1': {" __  ", "/_ | ", " | | ", " | | ", " | | ", " |_| "},
	'2': {" ___   ", "|__ \\  ", "   ) | ", "  / /  ", " / /_  ", "|____| "},
	'3': {" ____   ", "|___ \\  ", "  __) | ", " |__ <  ", " ___) | ", "|____/  "},
	'4': {" _  _    ", "| || |   ", "| || |_  ", "|__   _| ", "   | |   ", "   |_|   "},
	'5': {" _____  ", "| ____| ", "| |__   ", "|___ \\  ", " ___) | ", "|____/  "},
	'6': {"   __   ", "  / /   ", " / /_   ", "| '_ \\  ", "| (_) | ", " \\___/  "},
	'7': {" ______  ", "|____  | ", "    / /  ", "   / /   ", "  / /    ", " /_/     "},
	'8': {"  ___   ", " / _ \\  ", "| (_) | ", " > _ <  ", "| (_) | ", " \\___/  "},
	'9': {"  ___   ", " / _ \\  ", "| (_) | ", " \\__, | ", "   / /  ", "  /_/   "},
}

// Digits renders n in glyphs, each line starting with the left margin.
func Digits(n uint64) string {
	lines := newLines()
	appendNumber(&lines, n)
	return join(lines)
}

// Banner renders label followed by each number in glyphs. The label is
// printed on the middle line and the other lines are padded to its width.
func Banner(label string, numbers ...uint64) string {
	lines := newLines()
	width := len([]rune(label)) + 2
	for i := range lines {
		if i == Height/2 {
			lines[i] += label + "  "
		} else {
			lines[i] += strings.Repeat(" ", width)
		}
	}
	for _, n := range numbers {
		appendNumber(&lines, n)
	}
	return join(lines)
}

func newLines() [Height]string {
	var lines [Height]string
	for i := range lines {
		lines[i] = margin
	}
	return lines
}

func appendNumber(lines *[Height]string, n uint64) {
	for _, c := range strconv.FormatUint(n, 10) {
		g := glyphs[c]
		for i := range lines {
			lines[i] += g[i]
		}
	}
}

func join(lines [Height]string) string {
	out := make([]string, Height)
	for i, line := range lines {
		out[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(out, "\n")
}
