package ocdaemon

import (
	"encoding/json"
	"sort"

	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
	"github.com/danmuck/ocdaemon/stats"
	"github.com/danmuck/ocdaemon/trace"
)

// ExportSpans sends a batch of finished spans as one JSON-encoded frame.
// An empty batch still travels; the daemon treats it as a heartbeat of
// the trace path.
func (c *Client) ExportSpans(spans []*trace.SpanData) bool {
	if spans == nil {
		spans = []*trace.SpanData{}
	}
	payload, err := json.Marshal(spans)
	if err != nil {
		return false
	}
	return c.send(protocol.MsgTraceExport, payload)
}

// CreateMeasure announces a measure definition to the daemon before any
// values are recorded against it.
func (c *Client) CreateMeasure(m stats.Measure) bool {
	if m == nil {
		return false
	}
	buf := []byte{byte(measureValueType(m))}
	buf = wire.AppendString(buf, m.Name())
	buf = wire.AppendString(buf, m.Description())
	buf = wire.AppendString(buf, m.Unit())
	return c.send(protocol.MsgMeasureCreate, buf)
}

// SetReportingPeriod asks the daemon to flush view data every seconds
// interval. Periods below one second are rejected and no frame is sent.
func (c *Client) SetReportingPeriod(seconds float64) bool {
	if seconds < 1.0 {
		return false
	}
	buf, err := wire.AppendFloat(nil, seconds, c.width)
	if err != nil {
		return false
	}
	return c.send(protocol.MsgViewReportingPeriod, buf)
}

// RegisterViews subscribes the daemon to the given views. An empty batch
// is a no-op success.
func (c *Client) RegisterViews(views ...*stats.View) bool {
	if len(views) == 0 {
		return true
	}
	buf := wire.AppendUvarint(nil, uint64(len(views)))
	for _, v := range views {
		if v == nil || v.Measure == nil {
			return false
		}
		buf = wire.AppendString(buf, v.Name)
		buf = wire.AppendString(buf, v.Description)
		buf = wire.AppendUvarint(buf, uint64(len(v.TagKeys)))
		for _, key := range v.TagKeys {
			buf = wire.AppendString(buf, key)
		}
		buf = wire.AppendString(buf, v.Measure.Name())
		buf = wire.AppendUvarint(buf, uint64(v.Aggregation.Type))
		if v.Aggregation.Type == stats.AggTypeDistribution {
			buf = wire.AppendUvarint(buf, uint64(len(v.Aggregation.Buckets)))
			var err error
			for _, bound := range v.Aggregation.Buckets {
				if buf, err = wire.AppendFloat(buf, bound, c.width); err != nil {
					return false
				}
			}
		}
	}
	return c.send(protocol.MsgViewRegister, buf)
}

// UnregisterViews withdraws views by name. An empty batch is a no-op
// success.
func (c *Client) UnregisterViews(views ...*stats.View) bool {
	if len(views) == 0 {
		return true
	}
	buf := wire.AppendUvarint(nil, uint64(len(views)))
	for _, v := range views {
		if v == nil {
			return false
		}
		buf = wire.AppendString(buf, v.Name)
	}
	return c.send(protocol.MsgViewUnregister, buf)
}

// RecordStats sends measurements with the tags in effect and optional
// attachments. Attachments are encoded in sorted key order so identical
// maps produce identical payloads. An empty measurement batch is a no-op
// success.
func (c *Client) RecordStats(tags stats.TagContext, attachments map[string]string, ms ...stats.Measurement) bool {
	if len(ms) == 0 {
		return true
	}
	buf := wire.AppendUvarint(nil, uint64(len(ms)))
	for _, m := range ms {
		if m.Measure == nil {
			return false
		}
		buf = wire.AppendString(buf, m.Measure.Name())
		vt := measureValueType(m.Measure)
		buf = append(buf, byte(vt))
		var err error
		switch vt {
		case protocol.ValueInt:
			if buf, err = wire.AppendVarint(buf, int64(m.Value)); err != nil {
				return false
			}
		case protocol.ValueFloat:
			if buf, err = wire.AppendFloat(buf, m.Value, c.width); err != nil {
				return false
			}
		}
	}

	var tagList []stats.Tag
	if tags != nil {
		tagList = tags.Tags()
	}
	buf = wire.AppendUvarint(buf, uint64(len(tagList)))
	for _, t := range tagList {
		buf = wire.AppendString(buf, t.Key)
		buf = wire.AppendString(buf, t.Value)
	}

	buf = wire.AppendUvarint(buf, uint64(len(attachments)))
	keys := make([]string, 0, len(attachments))
	for k := range attachments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf = wire.AppendString(buf, k)
		buf = wire.AppendString(buf, attachments[k])
	}

	return c.send(protocol.MsgStatsRecord, buf)
}

func measureValueType(m stats.Measure) protocol.ValueType {
	switch m.(type) {
	case *stats.Int64Measure:
		return protocol.ValueInt
	case *stats.Float64Measure:
		return protocol.ValueFloat
	default:
		return protocol.ValueUnknown
	}
}
