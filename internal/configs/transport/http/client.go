package http

import (
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
)

// Opt defines a function type that configures a *resty.Client and may return an error.
type Opt func(*resty.Client) error

// New creates a resty.Client with the given base URL and options.
func New(baseURL string, opts ...Opt) (*resty.Client, error) {
	client := resty.New().SetBaseURL(baseURL)

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// RetryPolicy describes the parameters for HTTP request retry logic.
type RetryPolicy struct {
	Count   int           // Number of retry attempts
	Wait    time.Duration // Wait time between retries
	MaxWait time.Duration // Maximum wait time between retries
}

// WithRetryPolicy returns an Opt that applies the first valid retry policy from the provided list.
// A policy is valid if at least one of its fields is greater than zero.
// Requests are retried on transport errors and on 5xx responses.
func WithRetryPolicy(policies ...RetryPolicy) Opt {
	return func(c *resty.Client) error {
		for _, policy := range policies {
			if policy.Count > 0 || policy.Wait > 0 || policy.MaxWait > 0 {
				if policy.Count > 0 {
					c.SetRetryCount(policy.Count)
				}
				if policy.Wait > 0 {
					c.SetRetryWaitTime(policy.Wait)
				}
				if policy.MaxWait > 0 {
					c.SetRetryMaxWaitTime(policy.MaxWait)
				}
				c.AddRetryCondition(func(r *resty.Response, err error) bool {
					return err != nil || r.StatusCode() >= 500
				})
				break
			}
		}
		return nil
	}
}

// WithTimeout returns an Opt that bounds every request attempt.
func WithTimeout(timeout time.Duration) Opt {
	return func(c *resty.Client) error {
		if timeout < 0 {
			return errors.New("timeout must not be negative")
		}
		if timeout > 0 {
			c.SetTimeout(timeout)
		}
		return nil
	}
}
