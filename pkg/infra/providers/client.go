package providers

import (
	"context"
	"fmt"
	"strings"
)

// Config carries the per-call provider settings resolved from configuration.
type Config struct {
	Credentials  Credentials `json:"credentials"`
	Model        string      `json:"model"`
	MaxTokens    int         `json:"max_tokens,omitempty"`
	Temperature  float64     `json:"temperature,omitempty"`
	SystemPrompt string      `json:"system_prompt,omitempty"`
}

type Credentials struct {
	ApiKey string `json:"api_key"`
}

// Input is one classification request. Text is the primary subject unless an
// image is set; Context carries the trailing conversation window for chat.
type Input struct {
	Text       string   `json:"text,omitempty"`
	Context    []string `json:"context,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	ImageBytes []byte   `json:"-"`
	ImageMIME  string   `json:"image_mime,omitempty"`
}

func (i Input) HasImage() bool {
	return i.ImageURL != "" || len(i.ImageBytes) > 0
}

// Response is the raw provider reply; the classifier package parses the
// verdict envelope out of Response.
type Response struct {
	ID       string `json:"id"`
	Model    string `json:"model"`
	Response string `json:"response"`
	Usage    Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

type Client interface {
	Classify(ctx context.Context, config *Config, input Input) (*Response, error)
}

// FormatPrompt renders the classification subject plus its trailing
// conversation context as a single user prompt.
func FormatPrompt(input Input) string {
	if len(input.Context) == 0 {
		return fmt.Sprintf("Content to classify:\n%s", input.Text)
	}
	var b strings.Builder
	b.WriteString("Previous messages in this conversation (oldest first):\n")
	for _, msg := range input.Context {
		b.WriteString("- ")
		b.WriteString(msg)
		b.WriteString("\n")
	}
	b.WriteString("\nContent to classify:\n")
	b.WriteString(input.Text)
	return b.String()
}
