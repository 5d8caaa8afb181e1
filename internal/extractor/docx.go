package extractor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCX handles .docx files.
type DOCX struct{}

func (DOCX) Paragraphs(r io.Reader) ([]Paragraph, error) {
	// go-docx needs a ReadSeeker+size, so stage through a temp file.
	tmp, err := os.CreateTemp("", "docvani-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var paras []Paragraph
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		name := docxStyleName(para)
		paras = append(paras, Paragraph{
			Text:      docxParagraphText(para),
			Style:     styleFor(name),
			StyleName: name,
		})
	}
	return paras, nil
}

// styleFor maps a Word paragraph style to its role. Both the style ID
// spelling ("Heading2") and the display name ("Heading 2") occur in the
// wild. Unrecognized styles, other heading levels included, are body
// text.
func styleFor(name string) ParaStyle {
	switch strings.ToLower(strings.ReplaceAll(name, " ", "")) {
	case "heading2":
		return StyleTopicHeading
	case "heading3":
		return StyleSubtopicHeading
	case "toc1", "toc2", "toc3", "header", "footer":
		return StyleSkip
	default:
		return StyleBody
	}
}

func docxStyleName(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return "Normal"
	}
	return para.Properties.Style.Val
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
