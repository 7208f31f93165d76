package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/tripplanner/internal/models"
)

const DefaultTimeout = 45 * time.Second

// ErrUpstream marks transport-level failures: timeouts, auth errors, an
// unreachable endpoint or a missing client. Malformed content is never reported
// through it.
var ErrUpstream = errors.New("ai upstream failure")

// Completer sends one prompt to a generative model and returns its raw text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type TripRequest struct {
	Destination string
	Intent      string
	Trip        models.TripDetails
}

type Result struct {
	Content      models.PlanContent
	UsedFallback bool
}

type Generator struct {
	completer Completer
	timeout   time.Duration
}

func NewGenerator(completer Completer, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Generator{completer: completer, timeout: timeout}
}

// Generate returns schema-valid content for the request. When the model answers
// with text that cannot be parsed into the content schema, the generic template
// is returned with UsedFallback set instead of an error.
func (generator *Generator) Generate(ctx context.Context, request TripRequest) (Result, error) {
	if generator.completer == nil {
		return Result{}, fmt.Errorf("%w: no generative model configured", ErrUpstream)
	}

	callCtx, cancel := context.WithTimeout(ctx, generator.timeout)
	defer cancel()

	raw, err := generator.completer.Complete(callCtx, BuildPrompt(request))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	content, err := ParseContent(raw)
	if err != nil {
		log.Printf("ai: malformed response for %q, using fallback template: %v", strings.TrimSpace(request.Destination), err)
		return Result{Content: FallbackContent(request.Destination), UsedFallback: true}, nil
	}
	return Result{Content: content}, nil
}
