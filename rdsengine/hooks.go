package rdsengine

import "github.com/rds-dev/rdscom/rdsframe"

// Hooks lets an observer instrument engine activity without the core
// engine depending on any particular metrics or tracing library. The
// observability package implements this with Prometheus counters and
// OpenTelemetry spans; tests and simple programs can leave it unset.
type Hooks interface {
	// OnSend is called after a frame is written to the channel.
	OnSend(msg rdsframe.Message)

	// OnReceive is called after a frame is parsed, before its callbacks run.
	OnReceive(msg rdsframe.Message)

	// OnDrop is called when inbound bytes are discarded: unknown schema,
	// malformed frame, or buffer size mismatch.
	OnDrop(reason string)

	// OnRetry is called when a pending request is retransmitted.
	OnRetry(sequence uint16, attempt uint8)

	// OnAckExhausted is called when a pending request is dropped after
	// exhausting its retry budget.
	OnAckExhausted(sequence uint16)
}

type noopHooks struct{}

func (noopHooks) OnSend(rdsframe.Message)          {}
func (noopHooks) OnReceive(rdsframe.Message)        {}
func (noopHooks) OnDrop(string)                     {}
func (noopHooks) OnRetry(uint16, uint8)             {}
func (noopHooks) OnAckExhausted(uint16)             {}
