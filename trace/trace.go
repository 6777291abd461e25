// Package trace holds the span record the daemon client exports. Spans
// are variable-shape and low-rate compared to stats, so they travel as
// JSON; the field set below is the complete projection the daemon
// understands.
package trace

// SpanKind distinguishes the role of a span within a request.
type SpanKind int

const (
	SpanKindUnspecified SpanKind = 0
	SpanKindServer      SpanKind = 1
	SpanKindClient      SpanKind = 2
)

// Status is the outcome of a span.
type Status struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// TimeEvent is a timestamped annotation on a span.
type TimeEvent struct {
	Time        float64        `json:"time"`
	Description string         `json:"description"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// Link points at a span in another trace.
type Link struct {
	TraceID    string         `json:"traceId"`
	SpanID     string         `json:"spanId"`
	Type       int            `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// SpanData is one exported span. Times are wall-clock seconds with
// fractional microseconds, matching the frame header timestamps.
type SpanData struct {
	TraceID                 string         `json:"traceId"`
	SpanID                  string         `json:"spanId"`
	ParentSpanID            string         `json:"parentSpanId"`
	Name                    string         `json:"name"`
	Kind                    SpanKind       `json:"kind"`
	StackTrace              []string       `json:"stackTrace"`
	StartTime               float64        `json:"startTime"`
	EndTime                 float64        `json:"endTime"`
	Status                  Status         `json:"status"`
	Attributes              map[string]any `json:"attributes"`
	TimeEvents              []TimeEvent    `json:"timeEvents"`
	Links                   []Link         `json:"links"`
	SameProcessAsParentSpan bool           `json:"sameProcessAsParentSpan"`
}
