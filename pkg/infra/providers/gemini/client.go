package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/safenest/trustpipe/pkg/infra/providers"
)

type client struct{}

func NewGeminiClient() providers.Client {
	return &client{}
}

func (c *client) Classify(
	ctx context.Context,
	config *providers.Config,
	input providers.Input,
) (*providers.Response, error) {
	if config.Credentials.ApiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Credentials.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	var parts []*genai.Part
	if input.HasImage() {
		mime := input.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		if input.ImageURL != "" {
			parts = append(parts, genai.NewPartFromURI(input.ImageURL, mime))
		} else {
			parts = append(parts, genai.NewPartFromBytes(input.ImageBytes, mime))
		}
		if input.Text != "" {
			parts = append(parts, genai.NewPartFromText(input.Text))
		}
	} else {
		parts = append(parts, genai.NewPartFromText(providers.FormatPrompt(input)))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	genConfig := &genai.GenerateContentConfig{}
	if config.SystemPrompt != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
			Role:  "system",
		}
	}

	result, err := genaiClient.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	responseText := result.Text()
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	if responseText == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	completionResp := &providers.Response{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:    model,
		Response: responseText,
	}

	if result.UsageMetadata != nil {
		completionResp.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return completionResp, nil
}
