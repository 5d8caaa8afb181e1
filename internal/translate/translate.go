// Package translate annotates document trees with Hindi and Gujarati
// renderings of each section's text.
package translate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nmodha/docvani/internal/doctree"
)

// Translator produces the Hindi and Gujarati translation of one text.
type Translator interface {
	Translate(ctx context.Context, text string) (hindi, gujarati string, err error)
}

// Annotator walks a tree and fills in translations node by node. A
// failed node records empty strings and the walk continues; only
// context cancellation stops it.
type Annotator struct {
	translator Translator
	log        *slog.Logger
}

func NewAnnotator(tr Translator, log *slog.Logger) *Annotator {
	return &Annotator{translator: tr, log: log}
}

// Annotate returns a translated copy of tree. The input is never
// modified. Nodes that already carry translations are left as they
// are, so feeding a translated tree back through is a no-op.
func (a *Annotator) Annotate(ctx context.Context, tree *doctree.Tree) (*doctree.Tree, error) {
	out := tree.Clone()
	err := out.Walk(func(name string, _ []string, n *doctree.Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if n.Translations != nil {
			return nil
		}
		if strings.TrimSpace(n.Text) == "" {
			n.Translations = &doctree.Translations{}
			return nil
		}
		hindi, gujarati, err := a.translator.Translate(ctx, n.Text)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.log.Error("translation failed", "section", name, "error", err)
			n.Translations = &doctree.Translations{}
			return nil
		}
		n.Translations = &doctree.Translations{Hindi: hindi, Gujarati: gujarati}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
