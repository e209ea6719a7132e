package nl2sql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type GroqConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// GroqTranslator calls Groq's OpenAI-compatible chat-completion endpoint.
// The API key is not validated at construction time: an absent key surfaces
// as an authentication failure on the first fallback call.
type GroqTranslator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *http.Client
}

func NewGroqTranslator(cfg GroqConfig) *GroqTranslator {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "llama-3.1-8b-instant"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GroqTranslator{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

func (t *GroqTranslator) Translate(ctx context.Context, question string) (Result, error) {
	payload := map[string]any{
		"model": t.model,
		"messages": []map[string]string{
			{"role": "user", "content": BuildPrompt(question)},
		},
		"temperature": t.temperature,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read chat response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return Result{}, fmt.Errorf("chat completion failed status=%d body=%s", resp.StatusCode, string(rawRespBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return Result{}, fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, fmt.Errorf("empty chat completion choices")
	}

	sql := StripCodeFences(parsed.Choices[0].Message.Content)
	if strings.TrimSpace(sql) == "" {
		return Result{}, fmt.Errorf("model returned empty SQL")
	}
	return Result{
		SQL:      sql,
		Provider: "groq",
		Model:    t.model,
	}, nil
}

// BuildPrompt embeds the invoice schema and the question into the single
// user-role message sent per fallback invocation.
func BuildPrompt(question string) string {
	return fmt.Sprintf(`You are an expert SQL assistant with knowledge of this PostgreSQL schema:

Tables:
- "Invoice"(id, invoiceNo, vendorId, date, amount, status)
- "Vendor"(id, name, category)
- "Payment"(id, invoiceId, method, amount, date)
- "LineItem"(id, description, quantity, price, invoiceId)

Generate a valid SQL query (PostgreSQL) to answer this question:
%s

Return **only** SQL code (no explanations).`, question)
}

// StripCodeFences removes markdown code-fence markup models wrap SQL in.
func StripCodeFences(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.Contains(trimmed, "```") {
		trimmed = strings.ReplaceAll(trimmed, "```sql", "")
		trimmed = strings.ReplaceAll(trimmed, "```", "")
	}
	return strings.TrimSpace(trimmed)
}
