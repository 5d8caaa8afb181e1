package extractor

import (
	"io"
	"strings"
)

// Analysis summarizes the heading structure of a document without
// building its tree, so callers can see what an extraction would pick
// up before committing to a full processing run.
type Analysis struct {
	TotalParagraphs  int            `json:"total_paragraphs"`
	StylesFound      map[string]int `json:"styles_found"`
	PotentialTopics  []string       `json:"potential_topics"`
	StructurePreview []string       `json:"structure_preview"`
}

// Analyze reads the document from r and reports its style census and
// topic outline. Blank paragraphs count toward the total but not the
// census.
func Analyze(r io.Reader, filename string) (*Analysis, error) {
	e, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	paras, err := e.Paragraphs(r)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		TotalParagraphs:  len(paras),
		StylesFound:      make(map[string]int),
		PotentialTopics:  []string{},
		StructurePreview: []string{},
	}
	for _, p := range paras {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		a.StylesFound[p.StyleName]++
		switch p.Style {
		case StyleTopicHeading:
			a.PotentialTopics = append(a.PotentialTopics, text)
			a.StructurePreview = append(a.StructurePreview, text)
		case StyleSubtopicHeading:
			a.StructurePreview = append(a.StructurePreview, "  "+text)
		}
	}
	return a, nil
}
