package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/signalist/pkg/config"
	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/prompt"
)

// llmServer returns a test server replying with the given content and counting calls
func llmServer(t *testing.T, content string, calls *int32, check func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   500,
		Timeout:     5 * time.Second,
	}
}

func TestGenerator_Generate_HTML(t *testing.T) {
	var calls int32
	reply := "```html\n<p style=\"margin:0\">Dein Fokus auf <strong>Technologie</strong> passt gut. Wir helfen dir beim Start.</p>\n```"
	server := llmServer(t, reply, &calls, func(req openai.ChatCompletionRequest) {
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, defaultSystemPrompt, req.Messages[0].Content)
		assert.Equal(t, "rendered prompt", req.Messages[1].Content)
		assert.Nil(t, req.ResponseFormat)
	})
	defer server.Close()

	gen := NewGenerator(testConfig(server.URL))
	res, err := gen.Generate(context.Background(), prompt.Rendered{Name: "welcome-email", Text: "rendered prompt"}, FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, res.Format)
	assert.Equal(t, `<p style="margin:0">Dein Fokus auf <strong>Technologie</strong> passt gut. Wir helfen dir beim Start.</p>`, res.Text)
	assert.Nil(t, res.Symbol)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerator_Generate_CustomSystemPrompt(t *testing.T) {
	var calls int32
	server := llmServer(t, "<p>ok</p>", &calls, func(req openai.ChatCompletionRequest) {
		assert.Equal(t, "custom system", req.Messages[0].Content)
	})
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.SystemPrompt = "custom system"
	_, err := NewGenerator(cfg).Generate(context.Background(), prompt.Rendered{Text: "x"}, FormatHTML)
	require.NoError(t, err)
}

func TestGenerator_Generate_JSON(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantErr    bool
		wantSymbol domain.SymbolMapping
	}{
		{
			name:       "valid",
			reply:      `{"tradingViewSymbol":"NASDAQ:AAPL","confidence":"high","reasoning":"Apple ist an der NASDAQ gelistet"}`,
			wantSymbol: domain.SymbolMapping{TradingViewSymbol: "NASDAQ:AAPL", Confidence: domain.ConfidenceHigh, Reasoning: "Apple ist an der NASDAQ gelistet"},
		},
		{
			name:       "valid in code fence",
			reply:      "```json\n{\"tradingViewSymbol\":\"XETR:SAP\",\"confidence\":\"medium\",\"reasoning\":\"Xetra\"}\n```",
			wantSymbol: domain.SymbolMapping{TradingViewSymbol: "XETR:SAP", Confidence: domain.ConfidenceMedium, Reasoning: "Xetra"},
		},
		{name: "invalid confidence", reply: `{"tradingViewSymbol":"NASDAQ:AAPL","confidence":"extreme","reasoning":"r"}`, wantErr: true},
		{name: "missing key", reply: `{"tradingViewSymbol":"NASDAQ:AAPL","confidence":"high"}`, wantErr: true},
		{name: "extra key", reply: `{"tradingViewSymbol":"NASDAQ:AAPL","confidence":"high","reasoning":"r","exchange":"NASDAQ"}`, wantErr: true},
		{name: "not json", reply: `NASDAQ:AAPL`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := llmServer(t, tt.reply, &calls, nil)
			defer server.Close()

			res, err := NewGenerator(testConfig(server.URL)).Generate(context.Background(), prompt.Rendered{Text: "map"}, FormatJSON)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one call, no retry")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrMalformedResponse)
				var me *MalformedResponseError
				assert.ErrorAs(t, err, &me)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, res.Symbol)
			assert.Equal(t, tt.wantSymbol, *res.Symbol)
		})
	}
}

func TestGenerator_Generate_JSONSchemaResponseFormat(t *testing.T) {
	var calls int32
	reply := `{"tradingViewSymbol":"NYSE:IBM","confidence":"high","reasoning":"NYSE"}`
	server := llmServer(t, reply, &calls, func(req openai.ChatCompletionRequest) {
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, req.ResponseFormat.Type)
		require.NotNil(t, req.ResponseFormat.JSONSchema)
		assert.Equal(t, "symbol_mapping", req.ResponseFormat.JSONSchema.Name)
		assert.True(t, req.ResponseFormat.JSONSchema.Strict)
	})
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.UseJSONSchema = true
	res, err := NewGenerator(cfg).Generate(context.Background(), prompt.Rendered{Text: "map"}, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "NYSE:IBM", res.Symbol.TradingViewSymbol)

	// html requests never carry the schema
	var htmlCalls int32
	htmlServer := llmServer(t, "<p>x</p>", &htmlCalls, func(req openai.ChatCompletionRequest) {
		assert.Nil(t, req.ResponseFormat)
	})
	defer htmlServer.Close()
	cfg = testConfig(htmlServer.URL)
	cfg.UseJSONSchema = true
	_, err = NewGenerator(cfg).Generate(context.Background(), prompt.Rendered{Text: "x"}, FormatHTML)
	require.NoError(t, err)
}

func TestGenerator_Generate_Malformed(t *testing.T) {
	t.Run("empty reply", func(t *testing.T) {
		var calls int32
		server := llmServer(t, "   ", &calls, nil)
		defer server.Close()

		_, err := NewGenerator(testConfig(server.URL)).Generate(context.Background(), prompt.Rendered{Text: "x"}, FormatHTML)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "empty response")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
		}))
		defer server.Close()

		_, err := NewGenerator(testConfig(server.URL)).Generate(context.Background(), prompt.Rendered{Text: "x"}, FormatHTML)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		assert.Contains(t, err.Error(), "no choices")
	})
}

func TestGenerator_Generate_Unavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"internal error","type":"server_error"}}`))
		}))
		defer server.Close()

		_, err := NewGenerator(testConfig(server.URL)).Generate(context.Background(), prompt.Rendered{Text: "x"}, FormatHTML)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrExternalService)
		var ue *UnavailableError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		cfg := testConfig(server.URL)
		cfg.Timeout = 50 * time.Millisecond
		start := time.Now()
		_, err := NewGenerator(cfg).Generate(context.Background(), prompt.Rendered{Text: "x"}, FormatHTML)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrExternalService)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestGenerator_Generate_InvalidInput(t *testing.T) {
	gen := NewGenerator(config.LLMConfig{Endpoint: "http://127.0.0.1:1/v1", Model: "m"})

	_, err := gen.Generate(context.Background(), prompt.Rendered{Name: "empty"}, FormatHTML)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = gen.Generate(context.Background(), prompt.Rendered{Text: "x"}, Format("xml"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerator_MapSymbol(t *testing.T) {
	var calls int32
	reply := `{"tradingViewSymbol":"XETR:SAP","confidence":"high","reasoning":"SAP wird an Xetra gehandelt"}`
	server := llmServer(t, reply, &calls, func(req openai.ChatCompletionRequest) {
		body := req.Messages[1].Content
		assert.Contains(t, body, "SAP.DE")
		assert.Contains(t, body, "SAP SE")
		assert.Contains(t, body, "XETRA")
		assert.Contains(t, body, "EUR")
		assert.NotContains(t, body, "{{")
	})
	defer server.Close()

	gen := NewGenerator(testConfig(server.URL))
	mapping, err := gen.MapSymbol(context.Background(), domain.SymbolInfo{
		Symbol: "SAP.DE", Company: "SAP SE", Exchange: "XETRA", Currency: "EUR", Country: "DE",
	})
	require.NoError(t, err)
	assert.Equal(t, "XETR:SAP", mapping.TradingViewSymbol)
	assert.Equal(t, domain.ConfidenceHigh, mapping.Confidence)

	_, err = gen.MapSymbol(context.Background(), domain.SymbolInfo{Company: "no symbol"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "invalid input is rejected before calling the service")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "<p>x</p>", want: "<p>x</p>"},
		{in: "  <p>x</p>\n", want: "<p>x</p>"},
		{in: "```html\n<p>x</p>\n```", want: "<p>x</p>"},
		{in: "```\n<p>x</p>```", want: "<p>x</p>"},
		{in: "```<p>x</p>```", want: "<p>x</p>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFences(tt.in), tt.in)
	}
}
