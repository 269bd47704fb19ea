package aisvc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/recommend"
)

func newTestCompleter(t *testing.T, handler http.HandlerFunc) (*OpenAICompleter, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	completer, err := NewOpenAICompleter(&core.Config{
		AI: core.AIConfig{
			BaseURL: srv.URL + "/v1",
			APIKey:  "test-key",
			Model:   "gpt-4o-mini",
		},
	})
	if err != nil {
		t.Fatalf("NewOpenAICompleter(): %v", err)
	}
	return completer, srv
}

func TestNewOpenAICompleter_requiresAPIKey(t *testing.T) {
	if _, err := NewOpenAICompleter(&core.Config{}); err == nil {
		t.Error("NewOpenAICompleter() accepted an empty API key")
	}
}

func TestOpenAICompleter_Complete(t *testing.T) {
	completer, _ := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "[{\"name\": \"Nurse\"}]"}, "finish_reason": "stop"}]
		}`)
	})

	raw, err := completer.Complete(context.Background(), "system", "prompt")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if raw != `[{"name": "Nurse"}]` {
		t.Errorf("Complete() = %q", raw)
	}
}

func TestOpenAICompleter_Complete_noChoices(t *testing.T) {
	completer, _ := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`)
	})

	_, err := completer.Complete(context.Background(), "system", "prompt")
	if errors.Cause(err) != recommend.ErrUpstreamUnavailable {
		t.Errorf("Complete() error = %v, want cause %v", err, recommend.ErrUpstreamUnavailable)
	}
}

func TestOpenAICompleter_Complete_errorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCause error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantCause: recommend.ErrRateLimited},
		{name: "quota exhausted", status: http.StatusPaymentRequired, wantCause: recommend.ErrQuotaExceeded},
		{name: "bad credentials", status: http.StatusUnauthorized, wantCause: recommend.ErrUpstreamUnavailable},
		{name: "forbidden", status: http.StatusForbidden, wantCause: recommend.ErrUpstreamUnavailable},
		{name: "server error", status: http.StatusInternalServerError, wantCause: recommend.ErrUpstreamUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer, _ := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error": {"message": "upstream says no", "type": "api_error"}}`)
			})

			_, err := completer.Complete(context.Background(), "system", "prompt")
			if errors.Cause(err) != tt.wantCause {
				t.Errorf("Complete() error = %v, want cause %v", err, tt.wantCause)
			}
		})
	}
}

func TestOpenAICompleter_Complete_otherStatus(t *testing.T) {
	completer, _ := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error": {"message": "conflict", "type": "api_error"}}`)
	})

	_, err := completer.Complete(context.Background(), "system", "prompt")
	upErr, ok := errors.Cause(err).(*recommend.UpstreamError)
	if !ok {
		t.Fatalf("Complete() error = %T, want *recommend.UpstreamError", errors.Cause(err))
	}
	if upErr.Status != http.StatusConflict {
		t.Errorf("Status = %d, want %d", upErr.Status, http.StatusConflict)
	}
}

func TestOpenAICompleter_Complete_unreachable(t *testing.T) {
	completer, srv := newTestCompleter(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := completer.Complete(context.Background(), "system", "prompt")
	if errors.Cause(err) != recommend.ErrUpstreamUnavailable {
		t.Errorf("Complete() error = %v, want cause %v", err, recommend.ErrUpstreamUnavailable)
	}
}
