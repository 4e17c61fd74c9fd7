package testutil

import (
	"sync"
	"time"
)

// MetricCall is one call captured by RecordingSink.
type MetricCall struct {
	Kind  string // count, gauge or timing
	Name  string
	Value float64
	Tags  map[string]string
}

// RecordingSink is a statsd.Sink that keeps every call in memory.
type RecordingSink struct {
	mu    sync.Mutex
	calls []MetricCall
}

func (r *RecordingSink) record(kind, name string, value float64, tags map[string]string) {
	cp := make(map[string]string, len(tags))
	for k, v := range tags {
		cp[k] = v
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, MetricCall{Kind: kind, Name: name, Value: value, Tags: cp})
}

func (r *RecordingSink) Count(name string, value int64, tags map[string]string) {
	r.record("count", name, float64(value), tags)
}

func (r *RecordingSink) Gauge(name string, value float64, tags map[string]string) {
	r.record("gauge", name, value, tags)
}

func (r *RecordingSink) Timing(name string, value time.Duration, tags map[string]string) {
	r.record("timing", name, float64(value.Milliseconds()), tags)
}

// Calls returns the captured calls named name, or all of them when name is empty.
func (r *RecordingSink) Calls(name string) []MetricCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []MetricCall
	for _, c := range r.calls {
		if name == "" || c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
