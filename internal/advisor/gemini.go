package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"finvue/internal/currency"
	"finvue/internal/models"
)

// Gemini implements Advisor against the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed advisor.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// GetInsights asks the model for an analysis of the transaction history.
func (g *Gemini) GetInsights(ctx context.Context, txs []models.Transaction, preferred currency.Currency) (string, error) {
	var summary strings.Builder
	for _, t := range txs {
		curr, ok := currency.ByCode(t.CurrencyCode)
		if !ok {
			curr = preferred
		}
		desc := t.Description
		if desc == "" {
			desc = "unspecified item"
		}
		fmt.Fprintf(&summary, "%s: %s of %s%g (%s) for %s (%s)\n",
			t.Date, t.Type, curr.Symbol, t.Amount, t.CurrencyCode, desc, t.Category)
	}

	prompt := fmt.Sprintf(`As a professional financial advisor, analyze the following multi-currency transaction history.
The user's preferred display currency is %s (%s).
Identify spending patterns, suggest potential savings, and give a "Financial Health Score" out of 100.
Please account for the different currencies mentioned in the transactions.
Format the response using Markdown with bold headers and bullet points.

Transactions:
%s`, preferred.Name, preferred.Code, summary.String())

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
		TopK:        genai.Ptr[float32](40),
		TopP:        genai.Ptr[float32](0.95),
	})
	if err != nil {
		return "", fmt.Errorf("generate insights: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// ParseTransaction asks the model to turn free text into a structured
// transaction constrained to the active categories and supported
// currencies.
func (g *Gemini) ParseTransaction(ctx context.Context, input string, categories CategorySet) (*ParsedTransaction, error) {
	today := models.DateOf(time.Now())
	codes := make([]string, 0, len(currency.Supported))
	for _, c := range currency.Supported {
		codes = append(codes, c.Code)
	}

	prompt := fmt.Sprintf(`Parse the following financial transaction description into a structured JSON object.
Current Date: %s
Valid Expense Categories: %s
Valid Income Categories: %s
Supported Currencies: %s

If the category isn't an exact match, map it to the closest valid category.
If the date isn't mentioned, assume today (%s). Handle relative terms like "yesterday" or "last Friday".
If no currency is mentioned, default to USD.

Input: %q`,
		today,
		strings.Join(categories.Expense, ", "),
		strings.Join(categories.Income, ", "),
		strings.Join(codes, ", "),
		today,
		input)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"description":  {Type: genai.TypeString},
				"amount":       {Type: genai.TypeNumber},
				"category":     {Type: genai.TypeString},
				"type":         {Type: genai.TypeString, Enum: []string{"expense", "income"}},
				"date":         {Type: genai.TypeString, Description: "YYYY-MM-DD"},
				"currencyCode": {Type: genai.TypeString},
			},
			Required: []string{"description", "amount", "category", "type", "date", "currencyCode"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parse transaction: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var parsed ParsedTransaction
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal model JSON: %w", err)
	}
	return &parsed, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the strict-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only the first '{' through the last '}' if junk remains.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
