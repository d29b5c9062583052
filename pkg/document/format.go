package document

import (
	"bytes"
	"io"
)

// DefaultFileName is the name of the output document when none is configured.
const DefaultFileName = "project_contents.md"

const fence = "```"

var (
	crlf = []byte("\r\n")
	cr   = []byte("\r")
	lf   = []byte("\n")
)

// WriteSection writes one section for relPath to w and returns the number of
// bytes written. Line endings in content are normalized to '\n' ("\r\n" and
// lone '\r' alike), then trailing '\n' bytes are removed.
func WriteSection(w io.Writer, relPath string, content []byte) (int64, error) {
	content = normalizeNewlines(content)

	var buf bytes.Buffer
	buf.Grow(len(relPath) + len(content) + 16)

	buf.WriteString("## ")
	buf.WriteString(relPath)
	buf.WriteString("\n\n")
	buf.WriteString(fence + "\n")
	buf.Write(bytes.TrimRight(content, "\n"))
	buf.WriteString("\n" + fence + "\n\n")

	return buf.WriteTo(w)
}

func normalizeNewlines(b []byte) []byte {
	if bytes.IndexByte(b, '\r') < 0 {
		return b
	}
	b = bytes.ReplaceAll(b, crlf, lf)
	return bytes.ReplaceAll(b, cr, lf)
}
