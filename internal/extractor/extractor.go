// Package extractor turns heading-structured documents into the
// topic/subtopic tree the pipeline operates on. Each format frontend
// reduces its input to a flat sequence of styled paragraphs; BuildTree
// applies the shared sectioning rules on top.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nmodha/docvani/internal/doctree"
)

var (
	// ErrNotFound means the source document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidFormat means the container could not be parsed as the
	// format its extension claims.
	ErrInvalidFormat = errors.New("invalid document format")
)

// ParaStyle classifies a source paragraph for the tree builder.
type ParaStyle int

const (
	StyleBody ParaStyle = iota
	StyleTopicHeading
	StyleSubtopicHeading
	StyleSkip // front-matter furniture: TOC entries, headers, footers
)

// Paragraph is one styled paragraph of a source document. StyleName
// keeps the raw source label for structure analysis.
type Paragraph struct {
	Text      string
	Style     ParaStyle
	StyleName string
}

// Extractor converts one source format into styled paragraphs.
type Extractor interface {
	Paragraphs(r io.Reader) ([]Paragraph, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX{}, nil
	case ".md", ".markdown":
		return Markdown{}, nil
	case ".html", ".htm":
		return HTML{}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrInvalidFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extract parses the document from r and builds its topic tree. topics,
// when non-empty, is an allow-list of topic headings to keep.
func Extract(r io.Reader, filename string, topics []string) (*doctree.Tree, error) {
	e, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	paras, err := e.Paragraphs(r)
	if err != nil {
		return nil, err
	}
	return BuildTree(paras, topics), nil
}

// ExtractFile opens path and extracts its topic tree.
func ExtractFile(path string, topics []string) (*doctree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Extract(f, filepath.Base(path), topics)
}
