// Package rdsengine implements the exchange engine: the dispatch registry,
// the pending-ack table, the retransmit loop, and sequence allocation, as
// specified in spec.md §4.H. This is the largest and most interlocked
// component in the library.
package rdsengine

import (
	"github.com/rds-dev/rdscom/rdschannel"
	"github.com/rds-dev/rdscom/rdserrors"
	"github.com/rds-dev/rdscom/rdsbuffer"
	"github.com/rds-dev/rdscom/rdsframe"
	"github.com/rds-dev/rdscom/rdsresult"
	"github.com/rds-dev/rdscom/rdsschema"
)

// Callback is invoked with each received Message matching a
// (schema id, kind) registration.
type Callback func(msg rdsframe.Message)

type dispatchKey struct {
	schemaID uint8
	kind     rdsframe.Kind
}

type pendingEntry struct {
	message  rdsframe.Message
	timeSent uint64
	retries  uint8
}

// Engine is the reliable-exchange engine. It owns the dispatch registries,
// the schema registry, the pending-ack table, and the last-received
// timestamp; the Channel is borrowed, not owned. Per spec.md §9's REDESIGN
// note, the sequence counter is scoped per Engine instance rather than
// process-wide.
type Engine struct {
	channel rdschannel.Channel
	config  Config

	schemas  map[uint8]*rdsschema.Prototype
	callbacks map[dispatchKey][]Callback
	pending  map[uint16]*pendingEntry

	lastReceivedMs uint64
	sequence       uint32
}

// New creates an Engine bound to channel with the given configuration.
func New(channel rdschannel.Channel, config Config) *Engine {
	config.applyDefaults()
	return &Engine{
		channel:   channel,
		config:    config,
		schemas:   make(map[uint8]*rdsschema.Prototype),
		callbacks: make(map[dispatchKey][]Callback),
		pending:   make(map[uint16]*pendingEntry),
	}
}

// RegisterSchema adds or overwrites a prototype in the schema registry.
// Registering the reserved invalid id is refused (logged, no-op).
func (e *Engine) RegisterSchema(proto *rdsschema.Prototype) {
	if proto.Identifier() == rdsschema.ReservedID {
		e.config.Logger.Error("rdsengine: refusing to register reserved schema id", "id", proto.Identifier())
		return
	}
	e.schemas[proto.Identifier()] = proto
}

// RegisterCallback appends cb to the ordered list invoked when a message of
// the given (schemaID, kind) arrives. Callbacks run in registration order.
func (e *Engine) RegisterCallback(schemaID uint8, kind rdsframe.Kind, cb Callback) {
	key := dispatchKey{schemaID: schemaID, kind: kind}
	e.callbacks[key] = append(e.callbacks[key], cb)
}

// LookupSchema returns the registered prototype for id, or NotFound.
func (e *Engine) LookupSchema(id uint8) rdsresult.Result[*rdsschema.Prototype] {
	proto, ok := e.schemas[id]
	if !ok {
		return rdsresult.Err[*rdsschema.Prototype](rdserrors.New(rdserrors.CodeSchemaNotFound, "schema not found: %d", id))
	}
	return rdsresult.Ok(proto)
}

// NextSequence allocates the next sequence number for a new Request,
// wrapping modulo 2^16.
func (e *Engine) NextSequence() uint16 {
	e.sequence++
	return uint16(e.sequence)
}

// NewRequest builds a Request message against buf with a freshly allocated
// sequence number.
func (e *Engine) NewRequest(buf *rdsbuffer.Buffer) rdsframe.Message {
	return rdsframe.NewMessage(rdsframe.Request, buf, e.NextSequence())
}

// Send serializes msg and writes it to the channel. If ackRequired and msg
// is a Request, a PendingEntry is inserted keyed by its sequence number.
// Requiring an ack on a Response is invalid (a Response *is* the ack) and
// is logged rather than rejected outright, matching the source's
// documented (if dubious) behavior: the frame is still sent.
func (e *Engine) Send(msg rdsframe.Message, ackRequired bool) error {
	if err := e.channel.Send(rdsframe.Serialize(msg)); err != nil {
		return err
	}
	e.config.Hooks.OnSend(msg)

	if ackRequired {
		switch msg.Header.Kind {
		case rdsframe.Request:
			e.pending[msg.Header.Sequence] = &pendingEntry{
				message:  msg,
				timeSent: e.config.TimeFunc(),
				retries:  0,
			}
		case rdsframe.Response:
			e.config.Logger.Error("rdsengine: ack requested on a response; a response is itself the ack",
				"sequence", msg.Header.Sequence)
		}
	}
	return nil
}

// ReceiveOnce reads the channel once. If bytes are available, it peeks the
// schema id, looks up the prototype (dropping and logging on a miss),
// parses the frame (dropping and logging on a parse error), updates the
// last-received timestamp, clears any matching pending entry on a
// Response, and invokes registered callbacks in registration order.
func (e *Engine) ReceiveOnce() {
	data := e.channel.Receive()
	if len(data) == 0 {
		return
	}

	schemaID := rdsframe.PeekSchemaID(data)
	proto, ok := e.schemas[schemaID]
	if !ok {
		e.config.Logger.Debug("rdsengine: dropping frame for unknown schema", "schema_id", schemaID)
		e.config.Hooks.OnDrop("unknown schema")
		return
	}

	result := rdsframe.Parse(proto, data)
	if result.IsError() {
		e.config.Logger.Debug("rdsengine: dropping malformed frame", "error", result.Error())
		e.config.Hooks.OnDrop(result.ErrorMessage())
		return
	}

	msg := result.Value()
	e.lastReceivedMs = e.config.TimeFunc()

	if msg.Header.Kind == rdsframe.Response {
		delete(e.pending, msg.Header.Sequence)
	}

	e.config.Hooks.OnReceive(msg)

	key := dispatchKey{schemaID: msg.Header.SchemaID, kind: msg.Header.Kind}
	for _, cb := range e.callbacks[key] {
		cb(msg)
	}
}

// Tick runs one cooperative step: ReceiveOnce, then a sweep of the
// pending-ack table that resends any entry whose retry timer has elapsed
// (up to MaxRetries) or drops it as permanently failed.
func (e *Engine) Tick() {
	e.ReceiveOnce()

	now := e.config.TimeFunc()
	timeoutMs := uint64(e.config.RetryTimeout.Milliseconds())

	var exhausted []uint16
	for seq, entry := range e.pending {
		if now-entry.timeSent <= timeoutMs {
			continue
		}
		if entry.retries < e.config.MaxRetries {
			entry.retries++
			entry.timeSent = now
			e.config.Hooks.OnRetry(seq, entry.retries)
			if err := e.channel.Send(rdsframe.Serialize(entry.message)); err != nil {
				e.config.Logger.Warn("rdsengine: resend failed", "sequence", seq, "error", err)
				continue
			}
			e.config.Hooks.OnSend(entry.message)
		} else {
			exhausted = append(exhausted, seq)
		}
	}

	for _, seq := range exhausted {
		e.config.Logger.Warn("rdsengine: ack exhausted, dropping request", "sequence", seq)
		e.config.Hooks.OnAckExhausted(seq)
		delete(e.pending, seq)
	}
}

// TimeSinceLastReceive returns how long it's been since any frame was
// successfully received, in milliseconds.
func (e *Engine) TimeSinceLastReceive() uint64 {
	return e.config.TimeFunc() - e.lastReceivedMs
}

// PendingCount returns the number of requests currently awaiting an ack,
// for tests and observability.
func (e *Engine) PendingCount() int {
	return len(e.pending)
}
