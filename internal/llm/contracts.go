package llm

import "context"

// CompletionRequest carries one synchronous call to the text-generation
// capability. Temperature is pinned to zero by callers that need maximal
// reproducibility; MaxTokens bounds runaway generation.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// ChatClient is the interface the extraction pipeline depends on. The reply
// is free text expected to contain a single JSON object.
type ChatClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
