package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Ollama talks to a local Ollama server's chat API.
type Ollama struct {
	baseURL     string
	model       string
	temperature float32
	client      *http.Client
}

// NewOllama returns a generator for cfg.BaseURL and cfg.Model.
func NewOllama(cfg *Config) *Ollama {
	cfg = cfg.withDefaults()
	return &Ollama{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message *chatMessage `json:"message"`
	Error   string       `json:"error"`
}

// Generate sends the prompt as a single user message and returns the reply.
func (o *Ollama) Generate(ctx context.Context, p Prompt) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: p.Text()}},
		Stream:   false,
		Options:  map[string]any{"temperature": o.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := o.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", &APICallError{Provider: ProviderOllama, Message: "POST " + url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(respBody))
		if resp.StatusCode == http.StatusForbidden {
			msg = "forbidden; set OLLAMA_ORIGINS=\"*\" and restart Ollama"
		}
		return "", &APICallError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Message: msg}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &APICallError{Provider: ProviderOllama, Message: "decode response", Cause: err}
	}
	if out.Error != "" {
		return "", &APICallError{Provider: ProviderOllama, Message: out.Error}
	}
	if out.Message == nil || out.Message.Content == "" {
		return "", &ResponseError{Message: "invalid response format from Ollama"}
	}
	return out.Message.Content, nil
}

// Ping checks that the server is reachable by listing its models.
func (o *Ollama) Ping(ctx context.Context) error {
	url := o.baseURL + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return &APICallError{Provider: ProviderOllama, Message: "GET " + url, Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APICallError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Message: "unreachable"}
	}
	return nil
}

func (o *Ollama) Model() string { return o.model }

func (o *Ollama) Close() error {
	o.client.CloseIdleConnections()
	return nil
}
