// Package llm talks to an OpenAI-compatible generation service and checks the shape of its replies.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/signalist/pkg/config"
	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/prompt"
)

// Format is the reply format expected from the generation service
type Format string

// supported formats
const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// Content is a checked generation reply
type Content struct {
	Format Format
	Text   string
	Symbol *domain.SymbolMapping // set for FormatJSON
}

// UnavailableError is returned when the generation call fails or times out
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generation service unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes the error match domain.ErrExternalService
func (e *UnavailableError) Is(target error) bool { return target == domain.ErrExternalService }

// MalformedResponseError is returned when the reply fails format checks
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed generation response: " + e.Reason
}

// Is makes the error match domain.ErrMalformedResponse
func (e *MalformedResponseError) Is(target error) bool { return target == domain.ErrMalformedResponse }

// Generator sends rendered prompts to the LLM, one call per request
type Generator struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	store     *prompt.Store
	validate  *validator.Validate
	schema    []byte
}

// default system prompt for content generation
const defaultSystemPrompt = `You are the content assistant of Signalist, a stock market toolkit.
Follow the formatting instructions of each request exactly. Reply only with the requested content,
without commentary, markdown or code fences.`

// NewGenerator creates a new generator for the given LLM configuration
func NewGenerator(cfg config.LLMConfig) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Generator{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		store:     prompt.DefaultStore(),
		validate:  validator.New(),
		schema:    symbolMappingSchema(),
	}
}

// Generate sends the rendered prompt and checks the reply against the expected format.
// There is no retry, a failed call is reported as *UnavailableError.
func (g *Generator) Generate(ctx context.Context, p prompt.Rendered, f Format) (Content, error) {
	if strings.TrimSpace(p.Text) == "" {
		return Content{}, fmt.Errorf("empty prompt %q: %w", p.Name, domain.ErrValidation)
	}
	if f != FormatHTML && f != FormatJSON {
		return Content{}, fmt.Errorf("unsupported format %q: %w", f, domain.ErrValidation)
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       g.config.Model,
		Temperature: float32(g.config.Temperature),
		MaxTokens:   g.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: g.systemMsg,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: p.Text,
			},
		},
	}

	// ask for structured output if enabled, not all models support json schema
	if f == FormatJSON && g.config.UseJSONSchema {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "symbol_mapping",
				Schema: json.RawMessage(g.schema),
				Strict: true,
			},
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Content{}, &UnavailableError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return Content{}, &MalformedResponseError{Reason: "no choices in response"}
	}

	text := stripCodeFences(resp.Choices[0].Message.Content)
	if text == "" {
		return Content{}, &MalformedResponseError{Reason: "empty response"}
	}

	res := Content{Format: f, Text: text}
	if f == FormatJSON {
		check := CheckSymbolMapping([]byte(text))
		if !check.Valid {
			return Content{}, &MalformedResponseError{Reason: check.Reason}
		}
		mapping := check.Mapping
		res.Symbol = &mapping
	}
	return res, nil
}

// MapSymbol asks for the TradingView symbol matching the given stock
func (g *Generator) MapSymbol(ctx context.Context, info domain.SymbolInfo) (domain.SymbolMapping, error) {
	if err := g.validate.Struct(info); err != nil {
		return domain.SymbolMapping{}, fmt.Errorf("invalid symbol info: %w: %w", domain.ErrValidation, err)
	}

	tmpl, err := g.store.Get(prompt.SymbolMapping)
	if err != nil {
		return domain.SymbolMapping{}, err
	}
	rendered, err := prompt.Render(tmpl, map[string]any{
		"symbol":   info.Symbol,
		"company":  info.Company,
		"exchange": info.Exchange,
		"currency": info.Currency,
		"country":  info.Country,
	})
	if err != nil {
		return domain.SymbolMapping{}, fmt.Errorf("render symbol prompt: %w", err)
	}

	content, err := g.Generate(ctx, rendered, FormatJSON)
	if err != nil {
		return domain.SymbolMapping{}, err
	}
	return *content.Symbol, nil
}

// stripCodeFences removes a markdown code fence wrapped around the reply
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	// drop opening fence line, it may carry a language tag
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
