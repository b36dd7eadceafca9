package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"translate-tool/src/config"
	"translate-tool/src/logutil"
)

var (
	// ErrEmptyText is returned before any request is made.
	ErrEmptyText = errors.New("nothing to translate")
	// ErrUnavailable wraps every network, HTTP and response-shape failure.
	ErrUnavailable = errors.New("translation unavailable")
)

const (
	completionsPath = "/chat/completions"
	contentPath     = "choices.0.message.content"
	maxErrorBody    = 512
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type Options struct {
	// Timeout bounds a whole request; zero means no client-side limit.
	Timeout time.Duration
	Logger  *zap.SugaredLogger
}

type Client struct {
	cfg  config.Config
	http *resty.Client
	log  *zap.SugaredLogger
}

func New(cfg config.Config, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logutil.Nop()
	}
	h := resty.New().SetTimeout(opts.Timeout)
	return &Client{cfg: cfg, http: h, log: log}
}

// BuildPrompt joins the configured prompt and the captured text with one blank line.
func BuildPrompt(prompt, text string) string {
	return prompt + "\n\n" + text
}

// Endpoint returns the chat completions URL for apiURL.
func Endpoint(apiURL string) string {
	return strings.TrimRight(apiURL, "/") + completionsPath
}

// NewRequest builds the request body for text.
func NewRequest(cfg config.Config, text string) ChatRequest {
	return ChatRequest{
		Model: cfg.Model,
		Messages: []Message{
			{Role: "user", Content: BuildPrompt(cfg.Prompt, text)},
		},
	}
}

// Translate posts text to the configured endpoint and returns
// choices[0].message.content. It blocks for the duration of the request.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}

	url := Endpoint(c.cfg.APIURL)
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(NewRequest(c.cfg, text))
	if c.cfg.APIKey != "" {
		req.SetAuthToken(c.cfg.APIKey)
	}

	c.log.Infow("Sending translation request",
		"url", url,
		"model", c.cfg.Model,
		"api_key", logutil.RedactKey(c.cfg.APIKey),
		"chars", len([]rune(text)))

	start := time.Now()
	resp, err := req.Post(url)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Status(), apiErrorMessage(body))
	}

	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: response is not valid JSON", ErrUnavailable)
	}
	content := gjson.GetBytes(body, contentPath)
	if content.Type != gjson.String {
		return "", fmt.Errorf("%w: response has no string %s", ErrUnavailable, contentPath)
	}

	c.log.Infow("Translation received",
		"status", resp.StatusCode(),
		"duration", time.Since(start),
		"chars", len([]rune(content.String())))
	return content.String(), nil
}

// apiErrorMessage prefers the OpenAI-style error.message and otherwise
// returns a truncated body.
func apiErrorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Type == gjson.String {
		return msg.String()
	}
	s := string(body)
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
