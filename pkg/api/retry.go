package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// get performs an idempotent read, retrying transport failures and 5xx
// responses with exponential backoff. 4xx responses are final.
func (c *Client) get(ctx context.Context, path string, auth bool, out interface{}) error {
	operation := func() error {
		err := c.do(ctx, request{method: http.MethodGet, path: path, auth: auth}, out)
		if err == nil || retryable(ctx, err) {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.retryMax-1)), ctx)

	return backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		c.log.WithFields(logrus.Fields{"path": path, "wait": wait}).WithError(err).Debug("retrying read")
	})
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var te *TransportError
	return errors.As(err, &te)
}
