package speech

import (
	"context"
	"fmt"

	"github.com/nmodha/docvani/internal/doctree"
)

// Stub simulates synthesis for development runs without Azure
// credentials. The bytes it returns are not audio.
type Stub struct{}

// Synthesize returns a small placeholder payload.
func (Stub) Synthesize(ctx context.Context, text string, lang doctree.Language) ([]byte, error) {
	return []byte(fmt.Sprintf("stub audio: lang=%s bytes=%d", lang, len(text))), nil
}
