// Package speech annotates document trees with synthesized audio: each
// text variant of a node becomes an uploaded artifact referenced by ID.
package speech

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nmodha/docvani/internal/doctree"
	"github.com/nmodha/docvani/internal/store"
)

// Synthesizer turns text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, lang doctree.Language) ([]byte, error)
}

// Uploader stores synthesized audio with its metadata and returns the
// new artifact ID.
type Uploader interface {
	Store(ctx context.Context, data []byte, meta store.ObjectMeta) (string, error)
}

// Annotator walks a tree, synthesizes audio for every text variant and
// records the uploaded artifact IDs on the nodes.
type Annotator struct {
	synth   Synthesizer
	uploads Uploader
	log     *slog.Logger
}

// NewAnnotator wires a synthesizer and an artifact store together.
func NewAnnotator(synth Synthesizer, uploads Uploader, log *slog.Logger) *Annotator {
	if log == nil {
		log = slog.Default()
	}
	return &Annotator{synth: synth, uploads: uploads, log: log}
}

// Annotate returns a copy of the tree where every node carries a speech
// artifact ID per non-empty language variant. A failed synthesis or
// upload marks that one variant with the failure sentinel and the walk
// continues; nodes already carrying a real artifact ID are left alone,
// so a re-run only retries earlier failures. Only context cancellation
// aborts the whole pass.
func (a *Annotator) Annotate(ctx context.Context, tree *doctree.Tree) (*doctree.Tree, error) {
	out := tree.Clone()
	err := out.Walk(func(name string, ancestors []string, n *doctree.Node) error {
		prefix := namePrefix(ancestors, name)
		parent := ""
		if len(ancestors) > 0 {
			parent = ancestors[len(ancestors)-1]
		}

		for _, lang := range doctree.Languages {
			text := n.TextFor(lang)
			if strings.TrimSpace(text) == "" {
				continue
			}
			if ref := n.Speech[lang]; ref != nil && ref.FileID != "" && ref.FileID != doctree.SpeechFailed {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			a.log.Debug("synthesizing section audio",
				"section", name, "language", lang, "text_length", utf8.RuneCountInString(text))

			id, err := a.synthesizeAndStore(ctx, text, lang, prefix, name, parent)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				a.log.Error("speech generation failed",
					"section", name, "language", lang, "error", err)
				n.SetSpeech(lang, &doctree.SpeechRef{FileID: doctree.SpeechFailed})
				continue
			}
			n.SetSpeech(lang, &doctree.SpeechRef{FileID: id})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Annotator) synthesizeAndStore(ctx context.Context, text string, lang doctree.Language, prefix, section, parent string) (string, error) {
	audio, err := a.synth.Synthesize(ctx, text, lang)
	if err != nil {
		return "", err
	}

	textType := "translation"
	if lang == doctree.English {
		textType = "original"
	}
	meta := store.ObjectMeta{
		Filename:    prefix + "_" + string(lang) + ".mp3",
		Language:    string(lang),
		TextLength:  utf8.RuneCountInString(text),
		GeneratedAt: time.Now().UTC(),
		Content: store.ContentMeta{
			Section:       section,
			ParentSection: parent,
			Type:          "audio",
			Source:        "document_processing",
			Language:      string(lang),
			TextType:      textType,
		},
	}
	return a.uploads.Store(ctx, audio, meta)
}

// namePrefix sanitizes each name on the path to this node and joins
// them, so sibling artifacts land under distinct, human-legible names.
func namePrefix(ancestors []string, name string) string {
	parts := make([]string, 0, len(ancestors)+1)
	for _, a := range ancestors {
		parts = append(parts, CleanName(a))
	}
	parts = append(parts, CleanName(name))
	return strings.Join(parts, "_")
}
