package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	unconfigured := NewUnconfigured("anthropic")
	if !IsUnconfigured(unconfigured) {
		t.Fatal("IsUnconfigured false for unconfigured error")
	}
	if IsUnconfigured(NewTransport("google", errors.New("503"))) {
		t.Fatal("transport error misreported as unconfigured")
	}

	// Kind survives wrapping.
	wrapped := fmt.Errorf("route failed: %w", unconfigured)
	if !IsUnconfigured(wrapped) {
		t.Fatal("kind lost through wrapping")
	}
}

func TestErrorMessageNamesProvider(t *testing.T) {
	err := NewTransport("google", errors.New("connection reset"))
	msg := err.Error()
	if msg != "google: transport: connection reset" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"transport", NewTransport("google", errors.New("rate limited")), true},
		{"unconfigured", NewUnconfigured("openai"), false},
		{"malformed", NewMalformed("google", errors.New("empty body")), false},
		{"wrapped transport", fmt.Errorf("call: %w", NewTransport("openai", errors.New("502"))), true},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
