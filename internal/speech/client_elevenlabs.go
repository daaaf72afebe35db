package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	DefaultElevenLabsURL = "https://api.elevenlabs.io"
	elevenLabsModel      = "eleven_flash_v2_5"
)

type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	httpCli *http.Client
}

func NewElevenLabsClient(apiKey, voiceID, baseURL string, timeout time.Duration) *ElevenLabsClient {
	if baseURL == "" {
		baseURL = DefaultElevenLabsURL
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
	}
}

type elevenLabsRequest struct {
	Text         string `json:"text"`
	ModelID      string `json:"model_id"`
	LanguageCode string `json:"language_code,omitempty"`
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, langCode string, out io.Writer) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to send to TTS API")
	}

	payload, err := json.Marshal(elevenLabsRequest{
		Text:         text,
		ModelID:      elevenLabsModel,
		LanguageCode: isoLanguage(langCode),
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=mp3_44100_128", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("elevenlabs error: %s", string(b))
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

// ElevenLabs ждёт ISO 639-1 без региона: zh-CN → zh.
func isoLanguage(code string) string {
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}
