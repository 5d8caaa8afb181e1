package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown handles Markdown files using goldmark. Level-2 headings are
// topics and level-3 headings subtopics, mirroring the Word styles; any
// other heading level is treated as body text.
type Markdown struct{}

func (Markdown) Paragraphs(r io.Reader) ([]Paragraph, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var paras []Paragraph
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			style := StyleBody
			switch node.Level {
			case 2:
				style = StyleTopicHeading
			case 3:
				style = StyleSubtopicHeading
			}
			paras = append(paras, Paragraph{
				Text:      string(node.Text(src)),
				Style:     style,
				StyleName: fmt.Sprintf("Heading %d", node.Level),
			})
		default:
			if t := blockText(n, src); t != "" {
				paras = append(paras, Paragraph{Text: t, StyleName: "Paragraph"})
			}
		}
	}
	return paras, nil
}

// blockText gets the text content of a goldmark AST node. Blocks that
// carry source lines (paragraphs, code blocks) yield them directly;
// container blocks like lists recurse into their children instead, so
// text is never counted twice.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
