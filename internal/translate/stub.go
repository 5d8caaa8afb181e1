package translate

import "context"

// Stub simulates translation for development runs without a Groq API
// key. It tags the input text instead of translating it.
type Stub struct{}

func NewStub() Stub {
	return Stub{}
}

func (Stub) Translate(_ context.Context, text string) (string, string, error) {
	return "[hi] " + text, "[gu] " + text, nil
}
