package client

import (
	"io"
	"net"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/stagecraft/stagectl/pkg/http/httperror"
)

// Error strings that betray a connection torn down mid-flight. Go's
// net stack doesn't expose these as typed errors, so matching on text
// is the best available signal.
var retryableErrorStrings = []string{
	"use of closed network connection",
	"connection reset by peer",
	"transport connection broken",
	"server closed idle connection",
	"unexpected EOF reading trailer",
	"tls: use of closed connection",
}

// Retryable reports whether a transport error is a transient
// condition that a later poll may not see: timeouts, dropped
// connections, an unavailable or rate-limiting server. It is a
// classification policy for call sites to opt into, typically as the
// poller's Retryable hook; nothing applies it implicitly, and
// command-issuing calls must not use it at all.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	cause := errors.Cause(err)

	if urlErr, ok := cause.(*url.Error); ok {
		cause = urlErr.Err
	}

	switch cause {
	case io.EOF, io.ErrUnexpectedEOF:
		return true
	}

	if apiErr, ok := cause.(*httperror.APIError); ok {
		return apiErr.IsUnavailable() || apiErr.IsRateLimited()
	}

	if netErr, ok := cause.(net.Error); ok {
		if netErr.Timeout() || netErr.Temporary() {
			return true
		}
	}

	msg := cause.Error()
	for _, phrase := range retryableErrorStrings {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
