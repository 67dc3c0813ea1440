package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	modelName  = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// OrderSuggestion is a partial order guess produced from free text. Zero
// values mean the field could not be determined.
type OrderSuggestion struct {
	ClientName    string  `json:"client_name,omitempty"`
	ServiceName   string  `json:"service_name,omitempty"`
	UnitOfMeasure string  `json:"unit_of_measure,omitempty"`
	Quantity      float64 `json:"quantity,omitempty"`
	PONumber      string  `json:"po_number,omitempty"`
	Observations  string  `json:"observations,omitempty"`
}

// Extractor turns free text (a pasted email, a PO excerpt) into a suggestion.
type Extractor interface {
	ExtractOrder(ctx context.Context, text string) (*OrderSuggestion, error)
}

type anthropicExtractor struct {
	httpClient *resty.Client
}

// NewClient creates a configured extraction client.
func NewClient(apiKey string) Extractor {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicExtractor{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You extract order data from free text pasted by an operations clerk (emails, purchase orders, chat excerpts).

RULES:
- Output ONLY a JSON object with this structure:
  {
	"client_name": (string or ""),
	"service_name": (string or ""),
	"unit_of_measure": (string or ""),
	"quantity": (number or 0),
	"po_number": (string or ""),
	"observations": (string or "")
  }
- Leave a field empty when the text does not clearly state it. Never invent values.
- "po_number" is the client's purchase order reference if one appears.
- "observations" is a one-line summary of any special instructions, or empty.
- Escape newlines inside string values (use \n). Do not put real line breaks inside a string value.`

func (c *anthropicExtractor) ExtractOrder(ctx context.Context, text string) (*OrderSuggestion, error) {
	reqBody := messageRequest{
		Model:     modelName,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: text},
			// Prefill the assistant response to force JSON
			{Role: "assistant", Content: "{"},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return nil, fmt.Errorf("extraction api call: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("extraction api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return nil, fmt.Errorf("empty response from ai")
	}

	// Reconstruct the full JSON since we prefilled the opening brace
	responseText := "{" + respBody.Content[0].Text

	// Clean up potential markdown code blocks if the model wraps the JSON
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	responseText = strings.TrimSpace(responseText)

	var suggestion OrderSuggestion
	if err := json.Unmarshal([]byte(responseText), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ai response: %w", err)
	}

	return &suggestion, nil
}
