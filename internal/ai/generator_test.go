package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type stubCompleter struct {
	response string
	err      error
	wait     bool
}

func (stub stubCompleter) Complete(ctx context.Context, _ string) (string, error) {
	if stub.wait {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return stub.response, stub.err
}

func TestGeneratorReturnsParsedContent(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(FallbackContent("Tbilisi"))
	if err != nil {
		t.Fatalf("encode content: %v", err)
	}
	generator := NewGenerator(stubCompleter{response: string(encoded)}, time.Second)

	result, err := generator.Generate(context.Background(), TripRequest{Destination: "Tbilisi", Intent: "wine and mountains"})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if result.UsedFallback {
		t.Fatal("expected parsed content, not the fallback")
	}
}

func TestGeneratorFallsBackOnMalformedContent(t *testing.T) {
	t.Parallel()

	generator := NewGenerator(stubCompleter{response: "{ not json"}, time.Second)
	result, err := generator.Generate(context.Background(), TripRequest{Destination: "Tbilisi"})
	if err != nil {
		t.Fatalf("expected malformed content to fall back, got %v", err)
	}
	if !result.UsedFallback {
		t.Fatal("expected UsedFallback to be set")
	}
	if err := validateContent(result.Content); err != nil {
		t.Fatalf("expected fallback to be schema valid, got %v", err)
	}
}

func TestGeneratorReportsUpstreamFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		completer Completer
	}{
		{name: "no model configured", completer: nil},
		{name: "transport error", completer: stubCompleter{err: errors.New("401 unauthorized")}},
		{name: "timeout", completer: stubCompleter{wait: true}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			generator := NewGenerator(testCase.completer, 20*time.Millisecond)
			if _, err := generator.Generate(context.Background(), TripRequest{Destination: "Tbilisi"}); !errors.Is(err, ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}
		})
	}
}
