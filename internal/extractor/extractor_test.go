package extractor

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestForFile_KnownExtensions(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"spec.docx", "extractor.DOCX"},
		{"SPEC.DOCX", "extractor.DOCX"},
		{"readme.md", "extractor.Markdown"},
		{"notes.markdown", "extractor.Markdown"},
		{"page.html", "extractor.HTML"},
		{"page.htm", "extractor.HTML"},
	}
	for _, tt := range tests {
		e, err := ForFile(tt.filename)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.filename, err)
		}
		if got := typeName(e); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.filename, tt.want, got)
		}
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case DOCX:
		return "extractor.DOCX"
	case Markdown:
		return "extractor.Markdown"
	case HTML:
		return "extractor.HTML"
	default:
		return "unknown"
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	_, err := ForFile("report.pdf")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for unsupported extension, got %v", err)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("a.docx") || !IsSupportedExtension("B.MD") {
		t.Errorf("expected supported extensions to be case-insensitive")
	}
	if IsSupportedExtension("a.txt") || IsSupportedExtension("noext") {
		t.Errorf("expected unsupported extensions rejected")
	}
}

func TestExtractFile_MissingFile(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "nope.docx"), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStyleFor(t *testing.T) {
	tests := []struct {
		name string
		want ParaStyle
	}{
		{"Heading2", StyleTopicHeading},
		{"Heading 2", StyleTopicHeading},
		{"heading 2", StyleTopicHeading},
		{"Heading3", StyleSubtopicHeading},
		{"Heading 3", StyleSubtopicHeading},
		{"Heading1", StyleBody},
		{"Heading 4", StyleBody},
		{"TOC 1", StyleSkip},
		{"TOC2", StyleSkip},
		{"TOC 3", StyleSkip},
		{"Header", StyleSkip},
		{"Footer", StyleSkip},
		{"Normal", StyleBody},
		{"List Paragraph", StyleBody},
	}
	for _, tt := range tests {
		if got := styleFor(tt.name); got != tt.want {
			t.Errorf("styleFor(%q): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestAnalyze_Markdown(t *testing.T) {
	input := `## Scope of Work

Body line.

### Materials

More body.

## Payment Terms
`
	a, err := Analyze(strings.NewReader(input), "spec.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.PotentialTopics) != 2 || a.PotentialTopics[0] != "Scope of Work" {
		t.Errorf("expected topic headings listed, got %v", a.PotentialTopics)
	}
	wantPreview := []string{"Scope of Work", "  Materials", "Payment Terms"}
	if len(a.StructurePreview) != len(wantPreview) {
		t.Fatalf("expected preview %v, got %v", wantPreview, a.StructurePreview)
	}
	for i, w := range wantPreview {
		if a.StructurePreview[i] != w {
			t.Errorf("preview %d: expected %q, got %q", i, w, a.StructurePreview[i])
		}
	}
	if a.StylesFound["Heading 2"] != 2 || a.StylesFound["Heading 3"] != 1 {
		t.Errorf("expected style census, got %v", a.StylesFound)
	}
	if a.StylesFound["Paragraph"] != 2 {
		t.Errorf("expected body paragraphs counted, got %v", a.StylesFound)
	}
}

func TestAnalyze_UnsupportedExtension(t *testing.T) {
	_, err := Analyze(strings.NewReader("x"), "report.pdf")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
