package downloader

import "time"

// RetryPolicy formalizes how transient failures get
// retried: how many attempts a track may consume, how long
// to back off between them, and which failure kinds are
// worth another try at all.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(kind ErrorKind) bool
}

// ExponentialBackoff doubles the pause after every
// attempt: base, 2*base, 4*base, ...
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return base << (attempt - 1)
	}
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     ExponentialBackoff(time.Second),
		Retryable: func(kind ErrorKind) bool {
			return kind == ErrorKindFetch
		},
	}
}
