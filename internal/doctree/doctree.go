// Package doctree defines the document tree that flows through the
// processing pipeline: ordered topics, nested subtopics, per-node
// translations and speech artifact references.
package doctree

// Language identifies a speech output language.
type Language string

const (
	English  Language = "en"
	Hindi    Language = "hi"
	Gujarati Language = "gu"
)

// Languages lists the supported languages in canonical output order.
var Languages = []Language{English, Hindi, Gujarati}

// SpeechFailed is stored in place of a file ID when synthesis or upload
// of a speech artifact failed. It never resolves to a URL.
const SpeechFailed = "Failed to generate"

// Tree is the root of an extracted document: top-level topics in
// document order.
type Tree struct {
	Topics *NodeMap
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{Topics: NewNodeMap()}
}

// Node is one section of the document. Translations is nil until the
// translation stage has run; Speech holds one ref per language that has
// been synthesized.
type Node struct {
	Text         string
	Translations *Translations
	Speech       map[Language]*SpeechRef
	Subtopics    *NodeMap
}

// NewNode returns an empty node with an initialized subtopic map.
func NewNode() *Node {
	return &Node{
		Speech:    make(map[Language]*SpeechRef),
		Subtopics: NewNodeMap(),
	}
}

// Translations holds the translated variants of a node's text. Empty
// strings mean the translation was attempted and failed.
type Translations struct {
	Hindi    string
	Gujarati string
}

// SpeechRef points at a stored speech artifact. URL is filled in by the
// final merge stage; it stays empty for unresolved or failed IDs.
type SpeechRef struct {
	FileID string
	URL    string
}

// TextFor returns the node's text variant for lang, or "" when the
// variant does not exist yet.
func (n *Node) TextFor(lang Language) string {
	switch lang {
	case English:
		return n.Text
	case Hindi:
		if n.Translations != nil {
			return n.Translations.Hindi
		}
	case Gujarati:
		if n.Translations != nil {
			return n.Translations.Gujarati
		}
	}
	return ""
}

// SetSpeech records the speech ref for lang, initializing the map when
// the node was built as a bare literal.
func (n *Node) SetSpeech(lang Language, ref *SpeechRef) {
	if n.Speech == nil {
		n.Speech = make(map[Language]*SpeechRef)
	}
	n.Speech[lang] = ref
}

// Clone returns a deep copy. Stages clone their input so earlier stage
// outputs stay untouched.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	return &Tree{Topics: t.Topics.Clone()}
}

// Clone returns a deep copy of the node and everything below it.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Text: n.Text}
	if n.Translations != nil {
		tr := *n.Translations
		out.Translations = &tr
	}
	out.Speech = make(map[Language]*SpeechRef, len(n.Speech))
	for lang, ref := range n.Speech {
		r := *ref
		out.Speech[lang] = &r
	}
	out.Subtopics = n.Subtopics.Clone()
	return out
}

// Visit is called once per node in document order. ancestors holds the
// names of the enclosing sections, outermost first. Returning a non-nil
// error stops the walk.
type Visit func(name string, ancestors []string, n *Node) error

// Walk visits every node depth-first: each topic, then its subtopics in
// order, recursively.
func (t *Tree) Walk(fn Visit) error {
	if t == nil {
		return nil
	}
	return t.Topics.walk(nil, fn)
}

// CollectSpeechFileIDs gathers every stored artifact ID in document
// order, languages in canonical order within a node. Failed markers are
// excluded; they have no stored artifact to resolve.
func (t *Tree) CollectSpeechFileIDs() []string {
	var ids []string
	t.Walk(func(_ string, _ []string, n *Node) error {
		for _, lang := range Languages {
			ref := n.Speech[lang]
			if ref == nil || ref.FileID == "" || ref.FileID == SpeechFailed {
				continue
			}
			ids = append(ids, ref.FileID)
		}
		return nil
	})
	return ids
}

// AttachSpeechURLs returns a copy of the tree with resolved URLs merged
// into the matching speech refs. IDs absent from urls keep an empty URL.
func (t *Tree) AttachSpeechURLs(urls map[string]string) *Tree {
	out := t.Clone()
	out.Walk(func(_ string, _ []string, n *Node) error {
		for _, ref := range n.Speech {
			if u, ok := urls[ref.FileID]; ok {
				ref.URL = u
			}
		}
		return nil
	})
	return out
}
