package document

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Sections returns the relative paths of every section heading in src, in
// document order. Content that itself contains a ``` fence line can end a
// code block early, in which case headings inside that content are reported too.
func Sections(src []byte) ([]string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var paths []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level == 2 {
			paths = append(paths, headingText(heading, src))
		}
		// headings have no nested headings
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}
	return paths, nil
}

func headingText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
