package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rythumitra/rythumitra-backend/internal/logger"
)

// Gateway failures the handlers map to distinct statuses and
// user-facing messages. Everything else is a generic 500.
var (
	ErrRateLimited    = errors.New("ai gateway rate limit exceeded")
	ErrQuotaExhausted = errors.New("ai gateway credits exhausted")
)

// ToolDef is a function tool the model is forced to call, which is how
// every structured AI feature gets schema-shaped output back.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// AIClient is the chat-completions boundary. Every call is at-most-once:
// no retry, no backoff, no dedup — a failed call is surfaced to the
// farmer and they try again.
type AIClient interface {
	CallTool(ctx context.Context, system, user string, tool ToolDef) (json.RawMessage, error)
	CallToolWithImage(ctx context.Context, system, user, imageURL string, tool ToolDef) (json.RawMessage, error)
	CallText(ctx context.Context, system, user string) (string, error)
}

type aiClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
	apiKey := os.Getenv("AI_GATEWAY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing AI_GATEWAY_API_KEY")
	}

	baseURL := os.Getenv("AI_GATEWAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://ai.gateway.lovable.dev"
	}

	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "google/gemini-2.5-flash"
	}

	timeoutSec := 60
	if v := os.Getenv("AI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &aiClient{
		log:        log.With("service", "AIClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatTool struct {
	Type     string           `json:"type"`
	Function chatToolFunction `json:"function"`
}

type chatToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type chatToolChoice struct {
	Type     string `json:"type"`
	Function struct {
		Name string `json:"name"`
	} `json:"function"`
}

type chatRequest struct {
	Model      string          `json:"model"`
	Messages   []chatMessage   `json:"messages"`
	Tools      []chatTool      `json:"tools,omitempty"`
	ToolChoice *chatToolChoice `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *aiClient) CallTool(ctx context.Context, system, user string, tool ToolDef) (json.RawMessage, error) {
	return c.callTool(ctx, system, user, tool)
}

func (c *aiClient) CallToolWithImage(ctx context.Context, system, user, imageURL string, tool ToolDef) (json.RawMessage, error) {
	content := []any{
		map[string]any{"type": "text", "text": user},
		map[string]any{"type": "image_url", "image_url": map[string]any{"url": imageURL}},
	}
	return c.callTool(ctx, system, content, tool)
}

func (c *aiClient) callTool(ctx context.Context, system string, userContent any, tool ToolDef) (json.RawMessage, error) {
	choice := &chatToolChoice{Type: "function"}
	choice.Function.Name = tool.Name
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: userContent},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: chatToolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		}},
		ToolChoice: choice,
	}

	var resp chatResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool call in AI response")
	}
	args := resp.Choices[0].Message.ToolCalls[0].Function.Arguments
	if !json.Valid([]byte(args)) {
		return nil, fmt.Errorf("tool call arguments are not valid JSON")
	}
	return json.RawMessage(args), nil
}

func (c *aiClient) CallText(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	var resp chatResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in AI response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *aiClient) do(ctx context.Context, body chatRequest, out *chatResponse) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return ErrQuotaExhausted
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.log.Warn("AI gateway request failed", "status", resp.StatusCode, "body", string(raw))
		return fmt.Errorf("AI gateway error: %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("AI gateway decode error: %w", err)
	}
	return nil
}
