// Package protocol owns the daemon wire contract.
//
// Ownership boundary:
// - message type and measurement value type constants
// - the outbound message shape
package protocol
