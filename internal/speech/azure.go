package speech

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nmodha/docvani/internal/doctree"
)

const azureOutputFormat = "audio-24khz-48kbitrate-mono-mp3"

// DefaultVoices maps each language to its Indian neural voice.
var DefaultVoices = map[doctree.Language]string{
	doctree.English:  "en-IN-PrabhatNeural",
	doctree.Hindi:    "hi-IN-MadhurNeural",
	doctree.Gujarati: "gu-IN-NiranjanNeural",
}

// AzureOptions configures optional client behavior.
type AzureOptions struct {
	BaseURL    string
	Voices     map[doctree.Language]string
	HTTPClient *http.Client
}

// AzureClient implements Synthesizer against the Azure Cognitive
// Services text-to-speech REST endpoint.
type AzureClient struct {
	logger     *slog.Logger
	apiKey     string
	voices     map[doctree.Language]string
	httpClient *http.Client
	endpoint   string
}

// NewAzureClient creates a new Azure TTS client for the given region.
func NewAzureClient(logger *slog.Logger, apiKey, region string, opts *AzureOptions) *AzureClient {
	if opts == nil {
		opts = &AzureOptions{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 60 * time.Second,
		}
	}

	voices := opts.Voices
	if len(voices) == 0 {
		voices = DefaultVoices
	}

	endpoint := opts.BaseURL
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region)
	}

	return &AzureClient{
		logger:     logger,
		apiKey:     apiKey,
		voices:     voices,
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}

// Synthesize renders text with the voice configured for lang and
// returns MP3 bytes.
func (c *AzureClient) Synthesize(ctx context.Context, text string, lang doctree.Language) ([]byte, error) {
	voice, ok := c.voices[lang]
	if !ok {
		return nil, fmt.Errorf("no voice configured for language %q", lang)
	}

	body, err := ssml(voice, text)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", azureOutputFormat)
	req.Header.Set("User-Agent", "docvani")

	c.logger.Debug("calling Azure TTS",
		slog.String("endpoint", c.endpoint),
		slog.String("voice", voice),
		slog.Int("text_length", len(text)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call azure tts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		bodyStr := string(errBody)
		if readErr != nil {
			bodyStr = fmt.Sprintf("(failed to read body: %v)", readErr)
		}
		c.logger.Error("Azure TTS API error",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", bodyStr),
			slog.String("voice", voice),
		)
		return nil, fmt.Errorf("azure tts error: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("azure tts returned empty audio")
	}

	c.logger.Debug("Azure TTS synthesis succeeded",
		slog.String("voice", voice),
		slog.Int("audio_bytes", len(audio)),
	)
	return audio, nil
}

// ssml wraps text in the minimal SSML envelope Azure expects, escaping
// the text for XML.
func ssml(voice, text string) (string, error) {
	locale := voiceLocale(voice)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>", locale, locale, voice)
	if err := xml.EscapeText(&buf, []byte(text)); err != nil {
		return "", fmt.Errorf("escape ssml text: %w", err)
	}
	buf.WriteString("</voice></speak>")
	return buf.String(), nil
}

// voiceLocale extracts the locale from a voice name, e.g.
// "hi-IN-MadhurNeural" yields "hi-IN".
func voiceLocale(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 3 {
		return voice
	}
	return parts[0] + "-" + parts[1]
}
