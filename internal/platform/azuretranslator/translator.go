// Package azuretranslator implements the translation interface against the
// Microsoft Translator v3 REST API.
package azuretranslator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lexitrack/lexitrack/internal/config"
	"github.com/lexitrack/lexitrack/internal/translation"
)

// defaultEndpoint is the global Microsoft Translator endpoint.
const defaultEndpoint = "https://api.cognitive.microsofttranslator.com"

const requestTimeout = 15 * time.Second

// Verify interface compliance at compile time
var _ translation.Translator = (*Translator)(nil)

// Translator calls the Microsoft Translator v3 API. When a proxy URL is
// configured, requests go to the proxy instead and no subscription headers
// are attached; the proxy is expected to hold the credentials.
type Translator struct {
	endpoint   string
	apiKey     string
	region     string
	viaProxy   bool
	httpClient *http.Client
	logger     *slog.Logger

	mu        sync.Mutex
	languages []translation.Language
}

// New creates a Translator from the translation configuration. A Translator
// with neither an API key nor a proxy URL is still constructed, but every
// call returns ErrNotConfigured.
func New(cfg config.TranslationConfig, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Translator{
		endpoint:   defaultEndpoint,
		apiKey:     cfg.APIKey,
		region:     cfg.Region,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger.With("component", "azure_translator"),
	}
	if cfg.ProxyURL != "" {
		t.endpoint = strings.TrimRight(cfg.ProxyURL, "/")
		t.viaProxy = true
	}
	return t
}

// configured reports whether the Translator has a way to authenticate.
func (t *Translator) configured() bool {
	return t.viaProxy || t.apiKey != ""
}

// Translate implements translation.Translator.
func (t *Translator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if !t.configured() {
		return "", translation.ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text", translation.ErrRequestFailed)
	}
	if to == "" {
		return "", fmt.Errorf("%w: missing target language", translation.ErrRequestFailed)
	}

	params := url.Values{}
	params.Set("api-version", "3.0")
	params.Set("to", to)
	if from != "" {
		params.Set("from", from)
	}

	body, err := json.Marshal([]map[string]string{{"Text": text}})
	if err != nil {
		return "", fmt.Errorf("%w: %v", translation.ErrRequestFailed, err)
	}

	var result []struct {
		Translations []struct {
			Text string `json:"text"`
			To   string `json:"to"`
		} `json:"translations"`
	}
	if err := t.post(ctx, "/translate?"+params.Encode(), body, &result); err != nil {
		return "", err
	}

	if len(result) == 0 || len(result[0].Translations) == 0 {
		return "", fmt.Errorf("%w: no translations returned", translation.ErrBadResponse)
	}

	translated := result[0].Translations[0].Text
	t.logger.Debug("translated text",
		"from", from,
		"to", to,
		"chars", len(text))
	return translated, nil
}

// Languages implements translation.Translator. The language set changes
// rarely, so the first successful response is cached for the lifetime of
// the Translator.
func (t *Translator) Languages(ctx context.Context) ([]translation.Language, error) {
	if !t.configured() {
		return nil, translation.ErrNotConfigured
	}

	t.mu.Lock()
	cached := t.languages
	t.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var result struct {
		Translation map[string]struct {
			Name       string `json:"name"`
			NativeName string `json:"nativeName"`
			Dir        string `json:"dir"`
		} `json:"translation"`
	}
	if err := t.get(ctx, "/languages?api-version=3.0&scope=translation", &result); err != nil {
		return nil, err
	}
	if len(result.Translation) == 0 {
		return nil, fmt.Errorf("%w: empty language list", translation.ErrBadResponse)
	}

	languages := make([]translation.Language, 0, len(result.Translation))
	for code, entry := range result.Translation {
		languages = append(languages, translation.Language{
			Code:       code,
			Name:       entry.Name,
			NativeName: entry.NativeName,
			Dir:        entry.Dir,
		})
	}
	sort.Slice(languages, func(i, j int) bool {
		return languages[i].Name < languages[j].Name
	})

	t.mu.Lock()
	t.languages = languages
	t.mu.Unlock()

	return languages, nil
}

func (t *Translator) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", translation.ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, out)
}

func (t *Translator) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", translation.ErrRequestFailed, err)
	}
	return t.do(req, out)
}

func (t *Translator) do(req *http.Request, out any) error {
	if !t.viaProxy {
		req.Header.Set("Ocp-Apim-Subscription-Key", t.apiKey)
		if t.region != "" {
			req.Header.Set("Ocp-Apim-Subscription-Region", t.region)
		}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", translation.ErrRequestFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// The error body is informative but never required; read a bounded
		// amount for the log line.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		t.logger.Warn("translator API returned non-OK status",
			"status", resp.StatusCode,
			"body", string(detail))
		return fmt.Errorf("%w: status %d", translation.ErrRequestFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", translation.ErrBadResponse, err)
	}
	return nil
}
