package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// openAIClient implements the Client interface against the OpenAI API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI API client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1/chat/completions"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 300
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       modelName,
		endpoint:    endpoint,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// ClassifyText sends the denial text to OpenAI and parses the returned
// probability distribution over denial causes.
func (c *openAIClient) ClassifyText(ctx context.Context, text string) (Distribution, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": "You are an insurance-claim denial classifier. You MUST respond with ONLY a valid JSON object mapping cause names to probabilities between 0 and 1. Do not include any explanatory text, markdown formatting, or commentary. Start your response directly with { and end with }.",
			},
			{
				"role":    "user",
				"content": c.buildPrompt(text),
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	return parseDistribution(response.Choices[0].Message.Content)
}

// buildPrompt creates the classification prompt for a denial text.
func (c *openAIClient) buildPrompt(text string) string {
	causeList := ""
	for _, cause := range model.Causes() {
		causeList += fmt.Sprintf("- %s\n", cause)
	}

	return fmt.Sprintf(`Classify this insurance-claim denial reason into a probability distribution over the causes below.

Denial reason:
%s

Causes:
%s
Respond with a JSON object whose keys are the cause names above and whose values are probabilities between 0.0 and 1.0. Include only causes with non-zero probability.`,
		text,
		causeList)
}

// parseDistribution extracts the cause distribution from the model output.
// Unknown cause names are dropped; out-of-range scores are clamped.
func parseDistribution(content string) (Distribution, error) {
	content = strings.TrimSpace(content)

	// Tolerate code fences around the JSON
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var raw map[string]float64
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse distribution: %w", err)
	}

	dist := make(Distribution, len(raw))
	for name, score := range raw {
		cause := model.DenialCause(strings.ToLower(strings.TrimSpace(name)))
		if !cause.IsValid() {
			continue
		}
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		dist[cause] = score
	}

	if len(dist) == 0 {
		return nil, fmt.Errorf("distribution contained no known causes")
	}

	return dist, nil
}

// openAIResponse represents the chat completions API response shape.
type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
