package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultGoogleTTSURL = "https://translate.google.com"

	// translate_tts не принимает куски длиннее 100 символов
	maxChunkRunes = 100
)

type GoogleTTSClient struct {
	baseURL string
	httpCli *http.Client
}

func NewGoogleTTSClient(baseURL string, timeout time.Duration) *GoogleTTSClient {
	if baseURL == "" {
		baseURL = DefaultGoogleTTSURL
	}
	return &GoogleTTSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCli: &http.Client{Timeout: timeout},
	}
}

// Synthesize requests every chunk in order and appends the MP3 frames to out.
func (c *GoogleTTSClient) Synthesize(ctx context.Context, text, langCode string, out io.Writer) error {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return fmt.Errorf("no text to send to TTS API")
	}

	for i, chunk := range chunks {
		if err := c.fetchChunk(ctx, chunk, langCode, i, len(chunks), out); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

func (c *GoogleTTSClient) fetchChunk(ctx context.Context, chunk, langCode string, idx, total int, out io.Writer) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", langCode)
	q.Set("ttsspeed", "1")
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google tts status %d (lang %q): %s", resp.StatusCode, langCode, strings.TrimSpace(string(b)))
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

// splitText режет по пробелам; слова длиннее limit (и текст без пробелов,
// например китайский) режутся жёстко по рунам.
func splitText(text string, limit int) []string {
	var chunks []string
	var cur []rune

	flush := func() {
		if s := strings.TrimSpace(string(cur)); s != "" {
			chunks = append(chunks, s)
		}
		cur = cur[:0]
	}

	for _, word := range strings.FieldsFunc(text, unicode.IsSpace) {
		w := []rune(word)

		for len(w) > limit {
			flush()
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}

		need := len(w)
		if len(cur) > 0 {
			need++
		}
		if len(cur)+need > limit {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	flush()

	return chunks
}
