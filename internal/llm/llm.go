// Package llm abstracts the external language-model provider: an ordered
// message sequence goes in, a single answer text comes out.
package llm

import (
	"context"

	"github.com/pkg/errors"

	"github.com/notetutor/notetutor/store"
)

// ErrTimeout reports that the model invocation exceeded its deadline.
var ErrTimeout = errors.New("model request timed out")

// ErrEmptyResponse reports that the provider returned no usable answer.
var ErrEmptyResponse = errors.New("empty response from model")

// Message is one entry of the conversation sent to the model.
type Message struct {
	Role    store.Role
	Content string
}

// ChatRequest carries everything one completion call needs.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completer invokes the external model. Implementations may be slow and
// may fail; callers own timeout handling via ctx.
type Completer interface {
	Complete(ctx context.Context, req *ChatRequest) (string, error)
}
