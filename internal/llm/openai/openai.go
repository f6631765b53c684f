package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"palmlens/internal/fault"
	"palmlens/internal/llm"
)

const maxTokens = 4096

type Engine struct {
	client *openai.Client
	apiKey string
	model  string
}

// New creates an OpenAI-backed engine. Extra request options are passed
// through (custom base URL for compatible providers, local servers in tests).
func New(apiKey, model string, opts ...option.RequestOption) *Engine {
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Engine{
		client: openai.NewClient(all...),
		apiKey: apiKey,
		model:  model,
	}
}

func (e *Engine) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	if e.apiKey == "" {
		return "", fault.New(fault.Configuration, "OPENAI_API_KEY is not set")
	}

	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Images)+1)
	for _, img := range req.Images {
		dataURL := "data:" + img.MimeType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		parts = append(parts, openai.ImagePart(dataURL))
	}
	parts = append(parts, openai.TextPart(req.Prompt))

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(e.model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessageParts(parts...),
		}),
		Temperature: openai.F(0.0),
		MaxTokens:   openai.F(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to call openai: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fault.New(fault.UpstreamEmpty, "openai returned an empty reply, try again")
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fault.New(fault.UpstreamEmpty, "openai returned an empty reply, try again")
	}
	return reply, nil
}
