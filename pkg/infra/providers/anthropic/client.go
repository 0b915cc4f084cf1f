package anthropic

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/safenest/trustpipe/pkg/infra/providers"
)

type client struct {
	clientPool *sync.Map
}

func NewAnthropicClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
}

func (c *client) Classify(
	ctx context.Context,
	config *providers.Config,
	input providers.Input,
) (*providers.Response, error) {
	if config.Credentials.ApiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	anthropicClient := c.getOrCreateClient(config.Credentials.ApiKey)

	var blocks []anthropic.ContentBlockParamUnion

	if input.HasImage() {
		if input.ImageURL != "" {
			blocks = append(blocks, anthropic.NewImageBlock(anthropic.URLImageSourceParam{
				URL: input.ImageURL,
			}))
		} else {
			mime := input.ImageMIME
			if mime == "" {
				mime = "image/jpeg"
			}
			blocks = append(blocks, anthropic.NewImageBlockBase64(
				mime,
				base64.StdEncoding.EncodeToString(input.ImageBytes),
			))
		}
		if input.Text != "" {
			blocks = append(blocks, anthropic.NewTextBlock(input.Text))
		}
	} else {
		blocks = append(blocks, anthropic.NewTextBlock(providers.FormatPrompt(input)))
	}

	messages := []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)}

	model := anthropic.ModelClaudeHaiku4_5
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}

	maxTokens := int64(config.MaxTokens)
	if maxTokens == 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	if config.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Text: config.SystemPrompt,
				Type: "text",
			},
		}
	}

	if config.Temperature > 0 {
		params.Temperature = anthropic.Float(config.Temperature)
	}

	message, err := anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &providers.Response{
		ID:       message.ID,
		Model:    string(message.Model),
		Response: text,
		Usage: providers.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey string) *anthropic.Client {
	if cached, ok := c.clientPool.Load(apiKey); ok {
		if ac, ok := cached.(*anthropic.Client); ok {
			return ac
		}
	}
	ac := anthropic.NewClient(option.WithAPIKey(apiKey))
	c.clientPool.Store(apiKey, &ac)
	return &ac
}
