package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nmodha/docvani/internal/doctree"
)

func TestAzureClient_Synthesize(t *testing.T) {
	var gotBody string
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotHeaders = r.Header.Clone()
		w.Write([]byte("mp3 bytes"))
	}))
	defer server.Close()

	client := NewAzureClient(discardLogger(), "secret-key", "centralindia", &AzureOptions{BaseURL: server.URL})

	audio, err := client.Synthesize(context.Background(), "Bricks < stone & mortar", doctree.Hindi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "mp3 bytes" {
		t.Errorf("unexpected audio payload: %q", audio)
	}

	if got := gotHeaders.Get("Ocp-Apim-Subscription-Key"); got != "secret-key" {
		t.Errorf("expected subscription key header, got %q", got)
	}
	if got := gotHeaders.Get("X-Microsoft-OutputFormat"); got != "audio-24khz-48kbitrate-mono-mp3" {
		t.Errorf("unexpected output format header: %q", got)
	}
	if got := gotHeaders.Get("Content-Type"); got != "application/ssml+xml" {
		t.Errorf("unexpected content type: %q", got)
	}

	if !strings.Contains(gotBody, "name='hi-IN-MadhurNeural'") {
		t.Errorf("expected hindi voice in SSML, got %q", gotBody)
	}
	if !strings.Contains(gotBody, "xml:lang='hi-IN'") {
		t.Errorf("expected locale derived from voice, got %q", gotBody)
	}
	if !strings.Contains(gotBody, "Bricks &lt; stone &amp; mortar") {
		t.Errorf("expected XML-escaped text, got %q", gotBody)
	}
}

func TestAzureClient_ErrorStatusIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid subscription key"))
	}))
	defer server.Close()

	client := NewAzureClient(discardLogger(), "bad-key", "centralindia", &AzureOptions{BaseURL: server.URL})

	_, err := client.Synthesize(context.Background(), "text", doctree.English)
	if err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "status=401") || !strings.Contains(err.Error(), "invalid subscription key") {
		t.Errorf("expected status and body in error, got %v", err)
	}
}

func TestAzureClient_EmptyAudioIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewAzureClient(discardLogger(), "key", "centralindia", &AzureOptions{BaseURL: server.URL})

	_, err := client.Synthesize(context.Background(), "text", doctree.English)
	if err == nil || !strings.Contains(err.Error(), "empty audio") {
		t.Errorf("expected empty audio error, got %v", err)
	}
}

func TestAzureClient_UnknownLanguage(t *testing.T) {
	client := NewAzureClient(discardLogger(), "key", "centralindia", nil)
	_, err := client.Synthesize(context.Background(), "text", doctree.Language("fr"))
	if err == nil || !strings.Contains(err.Error(), "no voice configured") {
		t.Errorf("expected unknown language error, got %v", err)
	}
}

func TestVoiceLocale(t *testing.T) {
	tests := []struct {
		voice string
		want  string
	}{
		{"hi-IN-MadhurNeural", "hi-IN"},
		{"en-IN-PrabhatNeural", "en-IN"},
		{"gu-IN-NiranjanNeural", "gu-IN"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		if got := voiceLocale(tt.voice); got != tt.want {
			t.Errorf("voiceLocale(%q): expected %q, got %q", tt.voice, tt.want, got)
		}
	}
}
