package extractor

import (
	"strings"

	"github.com/nmodha/docvani/internal/doctree"
)

// BuildTree runs the sectioning state machine over a styled paragraph
// sequence. A topic heading starts a new topic; a subtopic heading
// starts a new subtopic under the active topic; body paragraphs buffer
// until the next heading (or end of document) flushes them into the
// section they belong to. Blank paragraphs never flush. A non-empty
// topics allow-list drops topics not on it (matched case-insensitively
// on the trimmed heading), body included, until the next kept topic
// heading.
func BuildTree(paras []Paragraph, topics []string) *doctree.Tree {
	allow := make(map[string]bool, len(topics))
	for _, t := range topics {
		allow[strings.ToLower(strings.TrimSpace(t))] = true
	}
	filtering := len(allow) > 0

	tree := doctree.NewTree()
	var topic *doctree.Node    // nil while body text is being discarded
	var subtopic *doctree.Node // nil until the topic's first subtopic heading
	var buf []string

	// Each flush is one contiguous run since the last heading, written
	// over whatever the target held before (duplicate headings keep the
	// last run).
	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = nil
		if topic == nil {
			return
		}
		if subtopic != nil {
			subtopic.Text = text
			return
		}
		topic.Text = text
	}

	for _, p := range paras {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		switch p.Style {
		case StyleSkip:
			continue
		case StyleTopicHeading:
			flush()
			subtopic = nil
			if filtering && !allow[strings.ToLower(text)] {
				topic = nil
				continue
			}
			topic = doctree.NewNode()
			tree.Topics.Set(text, topic)
		case StyleSubtopicHeading:
			if topic == nil {
				continue
			}
			flush()
			subtopic = doctree.NewNode()
			topic.Subtopics.Set(text, subtopic)
		default:
			if topic == nil {
				continue
			}
			buf = append(buf, text)
		}
	}
	flush()
	return tree
}
