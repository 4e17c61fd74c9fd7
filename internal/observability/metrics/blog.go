// Package metrics holds the metric names and tag conventions shared by the
// session store and the API client.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/favoriteblog/blog-ui/internal/observability/errors"
	"github.com/favoriteblog/blog-ui/internal/observability/statsd"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metric names.
const (
	SessionTransition = "session.transition"
	AuthAttempt       = "auth.attempt"
	APIRequest        = "api.request"
	APIRequestLatency = "api.request.duration"
)

// Transition describes one session state change.
type Transition struct {
	From string
	To   string
	Role string
}

// EmitSessionTransition counts a session state change.
func EmitSessionTransition(sink statsd.Sink, in Transition) {
	if sink == nil {
		return
	}
	tags := map[string]string{"from": in.From, "to": in.To}
	if in.Role != "" {
		tags["role"] = in.Role
	}
	sink.Count(SessionTransition, 1, tags)
}

// EmitAuthAttempt counts a login or registration outcome.
func EmitAuthAttempt(sink statsd.Sink, kind string, err error) {
	if sink == nil {
		return
	}
	sink.Count(AuthAttempt, 1, withError(map[string]string{"kind": kind}, err))
}

// Request describes one call made to the blog API. Status is 0 when no
// response was received.
type Request struct {
	Method   string
	Endpoint string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPIRequest counts a request and records its latency.
func EmitAPIRequest(sink statsd.Sink, in Request) {
	if sink == nil {
		return
	}
	tags := map[string]string{"method": in.Method, "endpoint": in.Endpoint}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	tags = withError(tags, in.Err)

	sink.Count(APIRequest, 1, tags)
	if in.Duration > 0 {
		sink.Timing(APIRequestLatency, in.Duration, CloneTags(tags))
	}
}

func withError(tags map[string]string, err error) map[string]string {
	if err == nil {
		tags["result"] = ResultSuccess
		return tags
	}
	tags["result"] = ResultError
	if class := obserrors.Classify(err); class != "" {
		tags["error_class"] = class
	}
	return tags
}

// CloneTags returns a shallow copy, or nil for an empty map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
