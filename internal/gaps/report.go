package gaps

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatList renders values as "[1, 2, 3]".
func FormatList[T ~uint8 | ~uint32](values []T) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	b.WriteByte(']')
	return b.String()
}

// FormatRecord renders one report line without the trailing newline:
//
//	[1, 2, 3] <margin> <midpoint> <closest> [<reachable>...]
//
// With expressions set the line ends in " | <expression>", or " | -" when
// no expression reaches the closest value.
func FormatRecord(rec Record, expressions bool) string {
	line := fmt.Sprintf("%s %d %d %d %s",
		FormatList(rec.Faces), rec.Distance, rec.Midpoint, rec.Closest, FormatList(rec.Reachable))
	if !expressions {
		return line
	}
	expr := rec.Expression
	if expr == "" {
		expr = "-"
	}
	return line + " | " + expr
}

// WriteReport writes one line per record in the given order.
func WriteReport(w io.Writer, records []Record, expressions bool) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(FormatRecord(rec, expressions) + "\n"); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReportFileName is the file a report for dice dice is written to.
func ReportFileName(dice int) string {
	return fmt.Sprintf("gaps_%d.txt", dice)
}
