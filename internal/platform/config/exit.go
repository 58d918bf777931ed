package config

import (
	"fmt"
	"os"
	"strings"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// ExitUsage writes usage to stderr and exits with code 0. Wrong argument
// counts are not reported through the exit status.
func ExitUsage(usage string) {
	fmt.Fprintln(os.Stderr, strings.TrimRight(usage, "\n"))
	os.Exit(0)
}
