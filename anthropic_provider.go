package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/charmbracelet/log"

	"github.com/Rshep3087/bizmargin/engine"
)

// AnthropicProvider implements InsightProvider for Anthropic's Claude API.
type AnthropicProvider struct {
	client *anthropic.Client
}

// NewAnthropicProvider creates a new Anthropic insight provider.
func NewAnthropicProvider(apiKey string, httpClient *http.Client) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	)

	return &AnthropicProvider{
		client: &client,
	}
}

// Suggest implements InsightProvider.
func (p *AnthropicProvider) Suggest(ctx context.Context, res engine.Result, currency string) ([]string, error) {
	prompt := buildInsightPrompt(res, currency)

	log.Debug("sending insight request to Anthropic", "tier", res.Tier.ID)

	response, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     "claude-3-haiku-20240307",
		MaxTokens: anthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Anthropic API: %w", err)
	}

	var responseText string
	if len(response.Content) > 0 {
		responseText = response.Content[0].Text
	}

	if responseText == "" {
		return nil, errors.New("empty response from Anthropic API")
	}

	insights, err := parseInsights(responseText)
	if err != nil {
		log.Error("failed to parse Anthropic response", "error", err, "response", responseText)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return insights, nil
}

func buildInsightPrompt(res engine.Result, currency string) string {
	return fmt.Sprintf(`You are a small business financial advisor.
Here is a summary of a business's finances.

%s

Please respond with ONLY a JSON array of at most %d short suggestions, for example:
["<suggestion>", "<suggestion>"]

Guidelines:
- Each suggestion is one sentence
- Focus on the largest expense areas and the profit margin
- Do not repeat the figures back`, formatResultForAI(res, currency), maxInsights)
}

// parseInsights extracts the suggestions array from the model's reply.
func parseInsights(response string) ([]string, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in response: %s", response)
	}

	var raw []string
	if err := json.Unmarshal([]byte(response[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	insights := make([]string, 0, maxInsights)
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		insights = append(insights, s)
		if len(insights) == maxInsights {
			break
		}
	}

	if len(insights) == 0 {
		return nil, errors.New("response contained no suggestions")
	}

	return insights, nil
}
