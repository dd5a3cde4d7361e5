package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	groqAPIURL         = "https://api.groq.com/openai/v1/chat/completions"
	groqPrimaryModel   = "llama-3.1-8b-instant"
	groqFallbackModel  = "mixtral-8x7b-32768"
	maxHistoryMessages = 10
	maxMessageLength   = 15000
	maxRetries         = 3
	retryBaseDelay     = time.Second
)

// GroqMessage is one turn of the conversation sent to the model.
type GroqMessage struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// GroqService is the chat transport: it calls Groq's OpenAI-compatible
// completion endpoint with the primary key/model and falls back to a
// secondary key and cheaper model when rate limited.
type GroqService struct {
	client      *http.Client
	apiKey      string
	fallbackKey string
}

func NewGroqService() *GroqService {
	return &GroqService{
		client:      &http.Client{Timeout: 15 * time.Second},
		apiKey:      os.Getenv("GROQ_API_KEY"),
		fallbackKey: os.Getenv("GROQ_API_KEY2"),
	}
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []GroqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the history (optionally prefixed with a system prompt) and
// returns the assistant's reply text. Retries transient failures with linear
// backoff; a 429 on the primary key switches to the fallback key and model.
func (g *GroqService) Complete(ctx context.Context, messages []GroqMessage, systemPrompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY not set")
	}
	if len(messages) > maxHistoryMessages {
		messages = messages[len(messages)-maxHistoryMessages:]
	}
	for _, m := range messages {
		if len(m.Content) > maxMessageLength {
			return "", fmt.Errorf("message too long: max %d characters", maxMessageLength)
		}
	}

	if systemPrompt != "" {
		messages = append([]GroqMessage{{Role: "system", Content: systemPrompt}}, messages...)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBaseDelay):
			}
		}

		reply, status, err := g.call(ctx, g.apiKey, groqPrimaryModel, messages)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		// Rate limited: try the secondary key with the cheaper model once.
		if status == http.StatusTooManyRequests && g.fallbackKey != "" {
			reply, _, ferr := g.call(ctx, g.fallbackKey, groqFallbackModel, messages)
			if ferr == nil {
				return reply, nil
			}
			lastErr = ferr
		}
	}
	return "", fmt.Errorf("groq request failed after %d attempts: %w", maxRetries+1, lastErr)
}

func (g *GroqService) call(ctx context.Context, key, model string, messages []GroqMessage) (string, int, error) {
	payload := groqRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   2048,
		TopP:        0.9,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal groq payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIURL, bytes.NewReader(b))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create groq request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("groq request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read groq response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gr groqResponse
		if json.Unmarshal(body, &gr) == nil && gr.Error != nil && gr.Error.Message != "" {
			return "", resp.StatusCode, fmt.Errorf("groq api error (%d): %s", resp.StatusCode, gr.Error.Message)
		}
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return "", resp.StatusCode, fmt.Errorf("groq api error (%d): %s", resp.StatusCode, preview)
	}

	var gr groqResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode groq response error: %w", err)
	}
	if len(gr.Choices) == 0 || strings.TrimSpace(gr.Choices[0].Message.Content) == "" {
		return "", resp.StatusCode, fmt.Errorf("empty completion from groq")
	}
	return gr.Choices[0].Message.Content, resp.StatusCode, nil
}
