// Package llm defines the interface to external multimodal generation
// services. Adapters make exactly one upstream call per Generate invocation;
// retry is entirely a caller decision and none is implemented here.
package llm

import "context"

// Image is one attachment sent alongside the prompt.
type Image struct {
	Data     []byte
	MimeType string
}

// GenerateRequest carries the textual prompt and zero or more images.
type GenerateRequest struct {
	Prompt string
	Images []Image
}

type Generator interface {
	// Generate returns the model's raw text reply. Adapters classify a
	// missing credential (fault.Configuration) and an empty reply
	// (fault.UpstreamEmpty); transport failures come back as plain wrapped
	// errors for the caller to classify.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
