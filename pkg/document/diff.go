package document

import (
	"bufio"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff writes a line diff from current to fresh to w. Removed lines are
// prefixed with "-", added lines with "+"; unchanged lines are omitted.
// It reports whether the two texts differ.
func WriteDiff(w io.Writer, current, fresh string) (bool, error) {
	if current == fresh {
		return false, nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(current, fresh)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	bw := bufio.NewWriter(w)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range splitLines(d.Text) {
			if _, err := bw.WriteString(prefix + line + "\n"); err != nil {
				return true, err
			}
		}
	}
	return true, bw.Flush()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
