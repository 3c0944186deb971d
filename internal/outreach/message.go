package outreach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"leadfinder-engine/internal/store"
)

// MessageWriter drafts an outreach message for a saved lead.
type MessageWriter interface {
	Draft(ctx context.Context, lead store.Lead, tone string) (string, error)
}

// LLMWriter calls an OpenAI-compatible /v1/chat/completions endpoint.
type LLMWriter struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewLLMWriter(baseURL, apiKey, model string, httpClient *http.Client) *LLMWriter {
	return &LLMWriter{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (w *LLMWriter) Draft(ctx context.Context, lead store.Lead, tone string) (string, error) {
	if tone == "" {
		tone = "professional and concise"
	}
	prompt := fmt.Sprintf(
		"Write a short application note for the role %q at %s (%s). Tone: %s. "+
			"Do not invent experience; keep it under 120 words.",
		lead.Title, lead.Company, lead.Location, tone,
	)

	reqBody := chatRequest{
		Model: w.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You draft brief, specific job application messages."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
		MaxTokens:   512,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	url := w.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read llm response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm returned HTTP %d: %s", resp.StatusCode, string(respBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse llm response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("llm error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// TemplateWriter is the fallback when no LLM key is configured.
type TemplateWriter struct{}

func (TemplateWriter) Draft(_ context.Context, lead store.Lead, _ string) (string, error) {
	return fmt.Sprintf(
		"Hi %s team,\n\nI came across the %s opening and it matches what I'm looking for. "+
			"I'd love to share how my background fits the role.\n\nListing: %s\n",
		lead.Company, lead.Title, lead.URL,
	), nil
}
