// File: services/ai/ollama.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// OllamaClient talks to a local Ollama server over its chat API.
type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// NewOllamaClient creates an Ollama-backed completion client.
func NewOllamaClient(baseURL, model string, logger *zap.Logger) *OllamaClient {
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaChatMessage `json:"message"`
}

// Complete sends the prompt and history to Ollama's /api/chat endpoint.
func (c *OllamaClient) Complete(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	messages := make([]ollamaChatMessage, 0, len(history)+2)
	messages = append(messages, ollamaChatMessage{Role: "system", Content: systemPrompt})
	for _, msg := range history {
		messages = append(messages, ollamaChatMessage{Role: msg.Role, Content: msg.Content})
	}
	messages = append(messages, ollamaChatMessage{Role: "user", Content: userMessage})

	payload, err := json.Marshal(ollamaChatRequest{Model: c.model, Messages: messages, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Ollama returned non-OK status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}
	return chatResp.Message.Content, nil
}

// Available probes the Ollama tags endpoint.
func (c *OllamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Name identifies the backend.
func (c *OllamaClient) Name() string {
	return "ollama:" + c.model
}
