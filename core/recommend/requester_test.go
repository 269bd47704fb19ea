package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type completerFunc func(ctx context.Context, system, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

func newTestRequester(timeout time.Duration, completer Completer) *Requester {
	conf := &core.Config{AI: core.AIConfig{RequestTimeout: timeout}}
	return NewRequester(completer, conf, nopLogger{})
}

func TestRequester_Request(t *testing.T) {
	var gotSystem, gotPrompt string
	completer := completerFunc(func(ctx context.Context, system, prompt string) (string, error) {
		gotSystem, gotPrompt = system, prompt
		return "raw model text", nil
	})

	r := newTestRequester(time.Second, completer)
	raw, err := r.Request(context.Background(), map[string]int{"analytical": 100}, map[string]int{"science": 100}, map[int]string{1: "analyzing"})
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if raw != "raw model text" {
		t.Errorf("Request() = %q; raw text must pass through unmodified", raw)
	}
	if gotSystem != SystemPrompt {
		t.Errorf("system prompt = %q", gotSystem)
	}
	if gotPrompt == "" {
		t.Error("user prompt empty")
	}
}

func TestRequester_Request_deadline(t *testing.T) {
	completer := completerFunc(func(ctx context.Context, system, prompt string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	r := newTestRequester(10*time.Millisecond, completer)
	_, err := r.Request(context.Background(), nil, nil, nil)
	if errors.Cause(err) != ErrUpstreamUnavailable {
		t.Errorf("Request() error = %v, want cause %v", err, ErrUpstreamUnavailable)
	}
}

func TestRequester_Request_errorPassthrough(t *testing.T) {
	completer := completerFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return "", errors.Wrap(ErrRateLimited, "slow down")
	})

	r := newTestRequester(time.Second, completer)
	_, err := r.Request(context.Background(), nil, nil, nil)
	if errors.Cause(err) != ErrRateLimited {
		t.Errorf("Request() error = %v, want cause %v", err, ErrRateLimited)
	}
}
