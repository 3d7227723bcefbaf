// Package ai implements the client for the AI tutor chat backend.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"algoquest/internal/config"
	"algoquest/internal/utils"
)

const tutorSystemPrompt = "You are an expert tutor for data structures and algorithms. " +
	"Guide the student towards the solution with hints, complexity analysis and small examples. " +
	"Do not hand over complete solutions unless the student explicitly asks for one."

// Tutor is a client for an OpenAI-compatible chat completions API.
type Tutor struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

// NewTutor creates a tutor client from the service configuration.
func NewTutor(cfg *config.TutorConfig) (*Tutor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("tutor API key is not configured")
	}

	return &Tutor{
		apiKey:      cfg.APIKey,
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Message represents a message in the tutor conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to the chat completions API
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// ChatResponse represents a response from the chat completions API
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the conversation history to the model and returns the reply. The
// tutor system prompt is always prepended, so callers only pass user and
// assistant turns.
func (t *Tutor) Chat(ctx context.Context, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: tutorSystemPrompt})
	messages = append(messages, history...)

	request := ChatRequest{
		Model:       t.model,
		Messages:    messages,
		MaxTokens:   t.maxTokens,
		Temperature: t.temperature,
	}

	requestData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", utils.NewAppError(utils.ErrTutorUnavailable, "tutor backend unreachable", err)
	}
	defer resp.Body.Close()

	var response ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	if response.Error != nil {
		return "", utils.NewAppError(utils.ErrTutorUnavailable, response.Error.Message, nil)
	}

	if len(response.Choices) == 0 {
		return "", utils.NewAppError(utils.ErrTutorUnavailable, "no response choices returned", nil)
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
