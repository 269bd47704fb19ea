package aisvc

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"

	"github.com/njia-app/njia/core"
	"github.com/njia-app/njia/core/recommend"
)

// OpenAICompleter implements recommend.Completer over the OpenAI SDK. It also
// works against OpenRouter and other OpenAI-compatible gateways via BaseURL.
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

var _ recommend.Completer = (*OpenAICompleter)(nil)

func NewOpenAICompleter(conf *core.Config) (*OpenAICompleter, error) {
	if conf.AI.APIKey == "" {
		return nil, errors.New("AI API key is required")
	}

	cfg := openai.DefaultConfig(conf.AI.APIKey)
	if conf.AI.BaseURL != "" {
		cfg.BaseURL = conf.AI.BaseURL
	}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  conf.AI.Model,
	}, nil
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.WithMessage(recommend.ErrUpstreamUnavailable, "no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// mapError translates transport failures into the recommend error taxonomy.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return errors.Wrap(recommend.ErrRateLimited, apiErr.Message)
		case apiErr.HTTPStatusCode == http.StatusPaymentRequired:
			return errors.Wrap(recommend.ErrQuotaExceeded, apiErr.Message)
		case apiErr.HTTPStatusCode == http.StatusUnauthorized,
			apiErr.HTTPStatusCode == http.StatusForbidden,
			apiErr.HTTPStatusCode >= 500:
			return errors.Wrap(recommend.ErrUpstreamUnavailable, apiErr.Message)
		default:
			return &recommend.UpstreamError{Status: apiErr.HTTPStatusCode, Err: err}
		}
	}
	// connection refused, DNS failure, context cancellation etc.
	return errors.Wrap(recommend.ErrUpstreamUnavailable, err.Error())
}
