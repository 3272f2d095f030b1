package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGatewayClient(t *testing.T, handler http.HandlerFunc) (AIClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("AI_GATEWAY_API_KEY", "test-key")
	t.Setenv("AI_GATEWAY_BASE_URL", server.URL)
	client, err := NewAIClient(newTestLogger(t))
	if err != nil {
		t.Fatalf("NewAIClient failed: %v", err)
	}
	return client, server
}

func toolCallResponse(arguments string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{{
			"message": map[string]any{
				"tool_calls": []map[string]any{{
					"function": map[string]any{
						"name":      "recommend_crops",
						"arguments": arguments,
					},
				}},
			},
		}},
	}
}

func TestCallToolParsesArguments(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toolCallResponse(`{"recommendations":[{"crop_name":"Tomato"}]}`))
	})

	tool := ToolDef{Name: "recommend_crops", Parameters: map[string]any{"type": "object"}}
	raw, err := client.CallTool(context.Background(), "system prompt", "user prompt", tool)
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotBody.ToolChoice == nil || gotBody.ToolChoice.Function.Name != "recommend_crops" {
		t.Fatalf("tool choice must force the named function, got %+v", gotBody.ToolChoice)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("expected system+user messages, got %+v", gotBody.Messages)
	}

	var parsed struct {
		Recommendations []struct {
			CropName string `json:"crop_name"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("arguments are not valid JSON: %v", err)
	}
	if len(parsed.Recommendations) != 1 || parsed.Recommendations[0].CropName != "Tomato" {
		t.Fatalf("unexpected parsed arguments: %+v", parsed)
	}
}

func TestCallToolRejectsInvalidArguments(t *testing.T) {
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(toolCallResponse(`not json`))
	})
	if _, err := client.CallTool(context.Background(), "s", "u", ToolDef{Name: "x"}); err == nil {
		t.Fatalf("expected error for malformed tool arguments")
	}
}

func TestCallToolMissingToolCall(t *testing.T) {
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "plain text"}}},
		})
	})
	if _, err := client.CallTool(context.Background(), "s", "u", ToolDef{Name: "x"}); err == nil {
		t.Fatalf("expected error when the model skips the tool call")
	}
}

func TestGatewayRateLimitMapsToSentinel(t *testing.T) {
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := client.CallTool(context.Background(), "s", "u", ToolDef{Name: "x"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGatewayQuotaMapsToSentinel(t *testing.T) {
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})
	_, err := client.CallText(context.Background(), "s", "u")
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", err)
	}
}

func TestGatewayServerErrorIsGeneric(t *testing.T) {
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := client.CallText(context.Background(), "s", "u")
	if err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected a generic gateway error, got %v", err)
	}
}

func TestCallTextReturnsContent(t *testing.T) {
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": `{"forecast":[]}`}}},
		})
	})
	content, err := client.CallText(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("CallText failed: %v", err)
	}
	if content != `{"forecast":[]}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestCallToolWithImageSendsImagePart(t *testing.T) {
	var rawBody map[string]any
	client, _ := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&rawBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(toolCallResponse(`{"is_healthy":true}`))
	})

	_, err := client.CallToolWithImage(context.Background(), "s", "describe", "https://example.com/leaf.jpg", ToolDef{Name: "diagnose"})
	if err != nil {
		t.Fatalf("CallToolWithImage failed: %v", err)
	}

	messages, _ := rawBody["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	userMsg, _ := messages[1].(map[string]any)
	parts, _ := userMsg["content"].([]any)
	if len(parts) != 2 {
		t.Fatalf("expected text+image content parts, got %v", userMsg["content"])
	}
	imagePart, _ := parts[1].(map[string]any)
	if imagePart["type"] != "image_url" {
		t.Fatalf("second part should be the image, got %v", imagePart)
	}
}
