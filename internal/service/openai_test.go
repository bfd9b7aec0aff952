package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"imovel-searcher/internal/config"
)

func newTestOpenAIClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIClient(&config.OpenAIConfig{
		APIKey:          "sk-test",
		APIBase:         server.URL + "/v1/",
		ChatModel:       "gpt-4o-mini",
		ChatTemperature: 0.2,
		Timeout:         2 * time.Second,
		Enabled:         true,
	})
}

func TestOpenAIClient_CompleteJSON(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ChatCompletionRequest
	client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"{\"quartos\": 2}"},"finish_reason":"stop"}]}`))
	})

	content, err := client.CompleteJSON(context.Background(), "system prompt", "2 quartos")
	if err != nil {
		t.Fatalf("CompleteJSON() error = %v", err)
	}
	if content != `{"quartos": 2}` {
		t.Errorf("content = %q", content)
	}

	if gotPath != "/v1/chat/completions" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("expected configured model, got %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", gotReq.Temperature)
	}
	if gotReq.ResponseFormat == nil || gotReq.ResponseFormat.Type != "json_object" {
		t.Errorf("expected json_object response format, got %+v", gotReq.ResponseFormat)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "2 quartos" {
		t.Errorf("unexpected messages %+v", gotReq.Messages)
	}
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`},
		{"invalid body", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestOpenAIClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			if _, err := client.CompleteJSON(context.Background(), "s", "u"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOpenAIClient_Disabled(t *testing.T) {
	client := NewOpenAIClient(&config.OpenAIConfig{})
	if client.IsEnabled() {
		t.Fatal("expected client without key to be disabled")
	}
	if _, err := client.CompleteJSON(context.Background(), "s", "u"); !errors.Is(err, ErrAIDisabled) {
		t.Errorf("expected ErrAIDisabled, got %v", err)
	}

	var nilClient *OpenAIClient
	if nilClient.IsEnabled() {
		t.Error("expected nil client to be disabled")
	}
}

func TestNewCompletionClient(t *testing.T) {
	if client := NewCompletionClient(&config.OpenAIConfig{}); client != nil {
		t.Errorf("expected nil client without a key, got %T", client)
	}
	if client := NewCompletionClient(nil); client != nil {
		t.Errorf("expected nil client for nil config, got %T", client)
	}
	if client := NewCompletionClient(&config.OpenAIConfig{APIKey: "k", Enabled: true}); client == nil {
		t.Error("expected a client when enabled")
	}
}
