// File: services/ai/gemini.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is a hosted alternative to the local Ollama backend.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient creates a Gemini-backed completion client.
func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiClient{model: model}, nil
}

// Complete builds a single prompt from the system prompt, history and user
// message, and returns Gemini's reply text.
func (g *GeminiClient) Complete(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error) {
	var prompt strings.Builder
	prompt.WriteString(systemPrompt)
	prompt.WriteString("\n\n")
	for _, msg := range history {
		role := "User"
		if msg.Role == "assistant" {
			role = "Assistant"
		}
		prompt.WriteString(fmt.Sprintf("%s: %s\n", role, msg.Content))
	}
	prompt.WriteString("User: " + userMessage)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// Available assumes the hosted API is reachable; failures surface per call.
func (g *GeminiClient) Available(ctx context.Context) bool {
	return g.model != nil
}

// Name identifies the backend.
func (g *GeminiClient) Name() string {
	return "gemini-1.5-pro"
}
