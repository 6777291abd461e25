package protocol

// ProtocolVersion is the single version byte carried in the REQ_INIT payload.
const ProtocolVersion byte = 0x01

// MessageType tags one frame on the wire.
type MessageType byte

// Message type IDs from the daemon contract. Process lifecycle occupies
// 0x01-0x02, request lifecycle 0x03-0x04, trace 0x14, stats 0x28-0x2C.
const (
	MsgProcInit            MessageType = 0x01
	MsgProcShutdown        MessageType = 0x02
	MsgReqInit             MessageType = 0x03
	MsgReqShutdown         MessageType = 0x04
	MsgTraceExport         MessageType = 0x14
	MsgMeasureCreate       MessageType = 0x28
	MsgViewReportingPeriod MessageType = 0x29
	MsgViewRegister        MessageType = 0x2A
	MsgViewUnregister      MessageType = 0x2B
	MsgStatsRecord         MessageType = 0x2C
)

// ValueType tags one measurement value within a stats payload.
type ValueType byte

const (
	ValueInt     ValueType = 0x01
	ValueFloat   ValueType = 0x02
	ValueUnknown ValueType = 0xFF
)

// KnownMessageType reports whether b is an assigned message type tag.
// The resync scanner uses this to tell a frame boundary from garbage.
func KnownMessageType(b byte) bool {
	switch MessageType(b) {
	case MsgProcInit, MsgProcShutdown, MsgReqInit, MsgReqShutdown,
		MsgTraceExport, MsgMeasureCreate, MsgViewReportingPeriod,
		MsgViewRegister, MsgViewUnregister, MsgStatsRecord:
		return true
	}
	return false
}

func (t MessageType) String() string {
	switch t {
	case MsgProcInit:
		return "proc.init"
	case MsgProcShutdown:
		return "proc.shutdown"
	case MsgReqInit:
		return "req.init"
	case MsgReqShutdown:
		return "req.shutdown"
	case MsgTraceExport:
		return "trace.export"
	case MsgMeasureCreate:
		return "measure.create"
	case MsgViewReportingPeriod:
		return "view.reporting_period"
	case MsgViewRegister:
		return "view.register"
	case MsgViewUnregister:
		return "view.unregister"
	case MsgStatsRecord:
		return "stats.record"
	default:
		return "unknown"
	}
}

// Message is one outbound frame before encoding. StartTime is wall-clock
// seconds with fractional microseconds. ThreadID is zero when the host
// runtime has no thread identity.
type Message struct {
	Type      MessageType
	Sequence  uint64
	ProcessID uint64
	ThreadID  uint64
	StartTime float64
	Payload   []byte
}
