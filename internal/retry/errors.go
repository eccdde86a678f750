package retry

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// HTTPError carries a remote status code through the error chain so the
// executor can classify it without parsing messages.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("remote error (status %d): %s", e.StatusCode, e.Body)
}

// retryableSubstrings classify errors from transports that surface failures
// as plain messages rather than typed errors.
var retryableSubstrings = []string{
	"rate limit",
	"rate_limit",
	"too many requests",
	"429",
	"502",
	"503",
	"bad gateway",
	"service unavailable",
	"connection reset",
	"broken pipe",
}

// IsRetryable reports whether err is a transient failure worth retrying:
// HTTP 429, a transient upstream failure (502/503), a network-level
// connection failure, or an error message indicating rate limiting.
// Everything else, including other 4xx statuses, propagates immediately.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 429, 502, 503:
			return true
		default:
			return false
		}
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, needle := range retryableSubstrings {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
