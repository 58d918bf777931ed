package nums

import (
	"bytes"
	"strings"
	"testing"
)

func TestLinePrompterConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		yes   string
		want  bool
	}{
		{input: "y\n", yes: "y", want: true},
		{input: "Yes please\n", yes: "y", want: true},
		{input: "J\n", yes: "j", want: true},
		{input: "y\n", yes: "j", want: false},
		{input: "\n", yes: "y", want: false},
		{input: "", yes: "y", want: false},
		{input: "y", yes: "y", want: true},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		prompter := NewPrompter(strings.NewReader(tc.input), &out, tc.yes)
		got, err := prompter.Confirm("continue? ")
		if err != nil {
			t.Fatalf("%q: confirm: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("%q with yes %q = %v, want %v", tc.input, tc.yes, got, tc.want)
		}
		if !strings.HasPrefix(out.String(), "continue? ") {
			t.Fatalf("question not printed: %q", out.String())
		}
	}
}

func TestLinePrompterReadsSequentialAnswers(t *testing.T) {
	t.Parallel()

	prompter := NewPrompter(strings.NewReader("y\nn\n"), &bytes.Buffer{}, "y")
	for i, want := range []bool{true, false, false} {
		got, err := prompter.Confirm("? ")
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("answer %d = %v, want %v", i, got, want)
		}
	}
}
