package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/forPelevin/hlselect/internal/domain/highlights"
	"github.com/forPelevin/hlselect/internal/types"
)

const (
	DefaultModel       = "openai/gpt-4o-2024-05-13"
	DefaultTimeout     = 90 * time.Second
	defaultTemperature = 0.7
	schemaName         = "highlight"
)

type Adapter struct {
	key     string
	model   string
	timeout time.Duration
	client  openai.Client
}

type Option func(*settings)

type settings struct {
	httpClient *http.Client
	timeout    time.Duration
	referer    string
	title      string
}

// WithHTTPClient overrides the transport, mostly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *settings) {
		if c != nil {
			s.httpClient = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithAppInfo sets the OpenRouter attribution headers.
func WithAppInfo(referer, title string) Option {
	return func(s *settings) {
		s.referer = strings.TrimSpace(referer)
		s.title = strings.TrimSpace(title)
	}
}

func New(apiKey, model, baseURL string, opts ...Option) *Adapter {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	s := settings{timeout: DefaultTimeout}
	for _, o := range opts {
		o(&s)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(apiBase(baseURL)),
		// Only degenerate replies are retried, and only by the operator.
		option.WithMaxRetries(0),
	}
	if s.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(s.httpClient))
	}
	if s.referer != "" {
		reqOpts = append(reqOpts, option.WithHeader("HTTP-Referer", s.referer))
	}
	if s.title != "" {
		reqOpts = append(reqOpts, option.WithHeader("X-Title", s.title))
	}

	return &Adapter{
		key:     apiKey,
		model:   strings.TrimSpace(model),
		timeout: s.timeout,
		client:  openai.NewClient(reqOpts...),
	}
}

// Highlight asks the model for one contiguous highlight of the transcript.
func (a *Adapter) Highlight(ctx context.Context, transcript string) (types.Candidate, error) {
	if strings.TrimSpace(transcript) == "" {
		return types.Candidate{}, errors.New("openrouter: empty transcript")
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(transcript),
		},
		Temperature: openai.Float(defaultTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   schemaName,
					Strict: openai.Bool(true),
					Schema: highlightSchema(),
				},
			},
		},
	})
	if err != nil {
		return types.Candidate{}, a.serviceError(reqCtx, err)
	}
	if len(resp.Choices) == 0 {
		return types.Candidate{}, highlights.SchemaError("reply has no choices")
	}

	msg := resp.Choices[0].Message
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		for _, tc := range msg.ToolCalls {
			if args := strings.TrimSpace(tc.Function.Arguments); args != "" {
				content = args
				break
			}
		}
	}
	if content == "" {
		if r := strings.TrimSpace(msg.Refusal); r != "" {
			return types.Candidate{}, highlights.SchemaError("model refused: %s", truncate(r, 200))
		}
		return types.Candidate{}, highlights.SchemaError("empty reply (finish_reason=%q)", resp.Choices[0].FinishReason)
	}
	return decodeCandidate(content)
}

func highlightSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"start":   map[string]any{"type": "number", "description": "Start time of the clip in seconds"},
			"content": map[string]any{"type": "string", "description": "Highlight text"},
			"end":     map[string]any{"type": "number", "description": "End time of the clip in seconds"},
		},
		"required":             []string{"start", "content", "end"},
		"additionalProperties": false,
	}
}

// decodeCandidate accepts exactly one {start, content, end} object.
// Missing, unknown or mistyped fields are schema violations.
func decodeCandidate(raw string) (types.Candidate, error) {
	body := stripCodeFence(raw)

	var out struct {
		Start   *float64 `json:"start"`
		Content *string  `json:"content"`
		End     *float64 `json:"end"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return types.Candidate{}, highlights.SchemaError("%v (payload: %q)", err, truncate(body, 200))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return types.Candidate{}, highlights.SchemaError("trailing data after highlight object")
	}

	var missing []string
	if out.Start == nil {
		missing = append(missing, "start")
	}
	if out.Content == nil {
		missing = append(missing, "content")
	}
	if out.End == nil {
		missing = append(missing, "end")
	}
	if len(missing) > 0 {
		return types.Candidate{}, highlights.SchemaError("missing required fields: %s", strings.Join(missing, ", "))
	}
	return types.Candidate{Start: *out.Start, Content: *out.Content, End: *out.End}, nil
}

// stripCodeFence removes a markdown fence wrapping the whole reply.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	} else {
		t = strings.TrimPrefix(t, "```")
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}

func (a *Adapter) serviceError(reqCtx context.Context, err error) error {
	se := &highlights.ServiceError{Op: "openrouter"}
	var apiErr *openai.Error
	switch {
	case errors.As(err, &apiErr):
		se.StatusCode = apiErr.StatusCode
		se.Err = &redactedError{msg: truncate(redactSecrets(apiErr.Error(), a.key), 400), err: err}
	case errors.Is(reqCtx.Err(), context.DeadlineExceeded):
		se.Err = fmt.Errorf("timeout after %s (model=%s): %w", a.timeout, a.model, context.DeadlineExceeded)
	default:
		se.Err = &redactedError{msg: redactSecrets(err.Error(), a.key), err: err}
	}
	return se
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var (
	bearerTokenRE = regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+\b`)
	authHeaderRE  = regexp.MustCompile(`(?i)(authorization\s*[:=]\s*)([^\n\r,;]+)`)
	apiKeyFieldRE = regexp.MustCompile(`(?i)(api[_-]?key\s*[:=]\s*)([^\n\r,;]+)`)
)

func redactSecrets(s, apiKey string) string {
	if s == "" {
		return s
	}
	out := s
	if apiKey != "" {
		out = strings.ReplaceAll(out, apiKey, "[REDACTED]")
	}
	out = bearerTokenRE.ReplaceAllString(out, "Bearer [REDACTED]")
	out = authHeaderRE.ReplaceAllString(out, "${1}[REDACTED]")
	out = apiKeyFieldRE.ReplaceAllString(out, "${1}[REDACTED]")
	return out
}
