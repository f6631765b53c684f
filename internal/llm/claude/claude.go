package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"palmlens/internal/fault"
	"palmlens/internal/llm"
)

// 4096 tokens is comfortably above the size of a full reading JSON
// (≈1500 tokens), with headroom for verbose models.
const maxTokens = 4096

type Engine struct {
	client *anthropic.Client
	apiKey string
	model  string
}

// New creates an Anthropic-backed engine. Extra client options are passed
// through, which lets tests point the client at a local server.
func New(apiKey, model string, opts ...anthropic.ClientOption) *Engine {
	return &Engine{
		client: anthropic.NewClient(apiKey, opts...),
		apiKey: apiKey,
		model:  model,
	}
}

func (e *Engine) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	if e.apiKey == "" {
		return "", fault.New(fault.Configuration, "CLAUDE_API_KEY is not set")
	}

	content := make([]anthropic.MessageContent, 0, len(req.Images)+1)
	for _, img := range req.Images {
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(
				anthropic.MessagesContentSourceTypeBase64,
				img.MimeType,
				img.Data,
			),
		))
	}
	content = append(content, anthropic.NewTextMessageContent(req.Prompt))

	resp, err := e.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(e.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude: %w", err)
	}

	reply := strings.TrimSpace(resp.GetFirstContentText())
	if reply == "" {
		return "", fault.New(fault.UpstreamEmpty, "claude returned an empty reply, try again")
	}
	return reply, nil
}
