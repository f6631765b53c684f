package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"palmlens/internal/fault"
	"palmlens/internal/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Engine struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
		baseURL: defaultBaseURL,
	}
}

// request types mirror the generateContent REST structure.
type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type request struct {
	Contents []struct {
		Parts []part `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (e *Engine) Generate(ctx context.Context, genReq llm.GenerateRequest) (string, error) {
	if e.apiKey == "" {
		return "", fault.New(fault.Configuration, "GEMINI_API_KEY is not set")
	}

	parts := make([]part, 0, len(genReq.Images)+1)
	parts = append(parts, part{Text: genReq.Prompt})
	for _, img := range genReq.Images {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: img.MimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	var body request
	body.Contents = make([]struct {
		Parts []part `json:"parts"`
	}, 1)
	body.Contents[0].Parts = parts
	body.GenerationConfig.Temperature = 0

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", e.baseURL, e.model, e.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, errBody)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fault.New(fault.UpstreamEmpty, "gemini returned an empty reply, try again")
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	reply := strings.TrimSpace(text.String())
	if reply == "" {
		return "", fault.New(fault.UpstreamEmpty, "gemini returned an empty reply, try again")
	}
	return reply, nil
}
