package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/janedoe/portfolio-server/internal/store"
)

// ChatTurn is the provider-agnostic message shape handed to a Completer.
type ChatTurn struct {
	Role    string // store.RoleUser or store.RoleAssistant
	Content string
}

// Completer generates the assistant's reply for an ordered message
// history. An empty string with a nil error means the provider returned
// no usable content; the conversation service substitutes its fallback.
type Completer interface {
	Complete(ctx context.Context, systemInstruction string, history []ChatTurn) (string, error)
}

// GeminiGateway translates a message history into a single Gemini API
// call. Model, temperature and token budget are static configuration.
type GeminiGateway struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewGeminiGateway(ctx context.Context, apiKey, model string, temperature float32, maxTokens int32) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiGateway{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

func (g *GeminiGateway) Complete(ctx context.Context, systemInstruction string, history []ChatTurn) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("message history is empty")
	}
	last := history[len(history)-1]
	if last.Role != store.RoleUser {
		return "", fmt.Errorf("last message in history is not from the user")
	}

	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	temp := g.temperature
	maxTokens := g.maxTokens
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	session := model.StartChat()
	for _, turn := range history[:len(history)-1] {
		session.History = append(session.History, &genai.Content{
			Role:  geminiRole(turn.Role),
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("gemini SendMessage failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(reply.String()), nil
}

// Gemini's wire format names the assistant role "model".
func geminiRole(role string) string {
	if role == store.RoleAssistant {
		return "model"
	}
	return "user"
}
