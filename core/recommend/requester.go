package recommend

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/njia-app/njia/core"
)

const defaultTimeout = 30 * time.Second

// Requester sends one non-streaming completion request per quiz submission
// and returns the model's raw text unmodified. It never retries; a failed
// call surfaces to the caller.
type Requester struct {
	completer Completer
	timeout   time.Duration
	logger    core.Logger
}

func NewRequester(completer Completer, conf *core.Config, logger core.Logger) *Requester {
	timeout := conf.AI.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Requester{
		completer: completer,
		timeout:   timeout,
		logger:    logger,
	}
}

// Request builds the prompt from the aggregated scores and raw answers and
// invokes the upstream model within a bounded deadline. Deadline expiry is
// reported as ErrUpstreamUnavailable.
func (r *Requester) Request(ctx context.Context, skillScores, streamScores map[string]int, answers map[int]string) (string, error) {
	prompt := BuildPrompt(skillScores, streamScores, answers)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.completer.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		if errors.Cause(err) == context.DeadlineExceeded || ctx.Err() == context.DeadlineExceeded {
			return "", errors.WithMessage(ErrUpstreamUnavailable, "request timed out")
		}
		return "", err
	}

	r.logger.Debug("model completion received", map[string]interface{}{
		"length":  len(raw),
		"preview": core.TruncateString(raw, 200),
	})
	return raw, nil
}
