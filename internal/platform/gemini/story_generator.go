package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/lexitrack/lexitrack/internal/config"
	"github.com/lexitrack/lexitrack/internal/domain"
	"github.com/lexitrack/lexitrack/internal/story"
)

// Verify interface compliance at compile time
var _ story.Generator = (*StoryGenerator)(nil)

const (
	defaultMaxRetries       = 3
	defaultBaseDelaySeconds = 2
)

// modelCaller abstracts the single Gemini request so the retry and parsing
// logic can be tested without the network.
type modelCaller interface {
	generateText(ctx context.Context, prompt string) (string, error)
}

// StoryGenerator implements the story.Generator interface using Google's
// Gemini API.
type StoryGenerator struct {
	logger     *slog.Logger
	caller     modelCaller
	maxRetries int
	baseDelay  time.Duration
}

// NewStoryGenerator creates a StoryGenerator from the story configuration.
//
// Returns an error wrapping story.ErrNotConfigured when the API key is
// missing, so callers can degrade gracefully instead of failing at startup.
func NewStoryGenerator(ctx context.Context, cfg config.StoryConfig, logger *slog.Logger) (*StoryGenerator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", story.ErrNotConfigured)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", story.ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", story.ErrGenerationFailed, err)
	}

	return &StoryGenerator{
		logger:     logger.With("component", "gemini_story_generator"),
		caller:     &geminiCaller{client: client, model: cfg.ModelName},
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelaySeconds * time.Second,
	}, nil
}

// GenerateStory implements story.Generator.
func (g *StoryGenerator) GenerateStory(ctx context.Context, items []domain.ReviewItem, langCode, langName string) (*story.DailyStory, error) {
	if len(items) == 0 {
		return nil, story.ErrNoWords
	}

	prompt := buildPrompt(items, langName)
	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := parseStoryResponse(text)
	if err != nil {
		return nil, err
	}

	wordIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		wordIDs[i] = item.ID
	}

	s, err := story.NewDailyStory(parsed.Title, parsed.Story, langCode, wordIDs, parsed.Questions, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", story.ErrInvalidResponse, err)
	}

	g.logger.Info("generated daily story",
		"language", langCode,
		"words", len(items),
		"questions", len(s.Questions))
	return s, nil
}

// callWithRetry calls the model with exponential backoff and jitter.
// Permanent errors (blocked content, unparseable response shape) are
// returned immediately; everything else is assumed transient.
func (g *StoryGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		text, err := g.caller.generateText(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errors.Is(err, story.ErrContentBlocked) || errors.Is(err, story.ErrInvalidResponse) {
			g.logger.Warn("permanent generation error, not retrying", "error", err)
			return "", err
		}
		if attempt >= g.maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		g.logger.Info("retrying story generation",
			"attempt", attempt+1,
			"max_attempts", g.maxRetries+1,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", story.ErrGenerationFailed, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exceeded %d attempts: %v", story.ErrGenerationFailed, g.maxRetries+1, lastErr)
}

// geminiCaller is the production modelCaller backed by the genai client.
type geminiCaller struct {
	client *genai.Client
	model  string
}

func (c *geminiCaller) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", story.ErrGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", story.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", story.ErrContentBlocked
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", story.ErrInvalidResponse)
	}
	return text, nil
}

// storyResponse is the JSON shape the prompt asks the model to return.
type storyResponse struct {
	Title     string               `json:"title"`
	Story     string               `json:"story"`
	Questions []story.QuizQuestion `json:"questions"`
}

func buildPrompt(items []domain.ReviewItem, langName string) string {
	words := make([]string, len(items))
	for i, item := range items {
		words[i] = fmt.Sprintf("%s (%s)", item.Term, item.Translation)
	}
	wordList := strings.Join(words, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "You are a creative language learning assistant. Write a short, engaging story for language learners.\n\n")
	fmt.Fprintf(&b, "TASK: Write a short story (200-300 words) in %s that naturally incorporates the following vocabulary words. The story should be simple enough for intermediate learners but interesting to read.\n\n", langName)
	fmt.Fprintf(&b, "VOCABULARY WORDS TO INCLUDE:\n%s\n\n", wordList)
	fmt.Fprintf(&b, "REQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. The story should be written entirely in %s\n", langName)
	fmt.Fprintf(&b, "2. Use all the vocabulary words naturally within the story\n")
	fmt.Fprintf(&b, "3. Keep sentences relatively simple but varied\n")
	fmt.Fprintf(&b, "4. Create an engaging narrative with a clear beginning, middle, and end\n")
	fmt.Fprintf(&b, "5. After the story, create 4 multiple-choice comprehension questions about the story content and vocabulary usage\n\n")
	fmt.Fprintf(&b, "RESPONSE FORMAT (strict JSON):\n")
	fmt.Fprintf(&b, `{"title": "Story title in %s", "story": "The full story text...", "questions": [{"question": "Question text?", "options": ["Option A", "Option B", "Option C", "Option D"], "correctIndex": 0}]}`, langName)
	fmt.Fprintf(&b, "\n\nMake sure correctIndex is 0-based (0 for first option, 1 for second, etc.).\n")
	fmt.Fprintf(&b, "Return ONLY the JSON object, no additional text.\n")
	return b.String()
}

// parseStoryResponse decodes the model output, tolerating markdown code
// fences around the JSON object.
func parseStoryResponse(text string) (*storyResponse, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed storyResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", story.ErrInvalidResponse, err)
	}
	return &parsed, nil
}
