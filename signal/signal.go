// Package signal provides a synchronous in-process event source whose
// subscriptions are disposable connections.
//
// A [Signal] delivers emitted values to every connected handler in
// connection order. [Signal.Connect] returns a [Connection] exposing
// Connected and Disconnect, the subscription shape consumed by the bin
// package's disposal dispatcher, so a connection can be handed straight to a
// Bin and disconnected by its cleanup.
//
// Handlers are called synchronously and protected against panics: a
// panicking handler cannot block delivery to the remaining handlers.
package signal

import (
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Handler is a function that receives emitted values.
type Handler func(v any)

// Signal is a synchronous fan-out event source. It is safe for concurrent
// use.
type Signal struct {
	mu    sync.Mutex
	conns []*Connection
}

// Connection is one live subscription to a Signal. Its zero value is not
// usable; obtain connections from Signal.Connect.
type Connection struct {
	sig       *Signal
	handler   Handler
	connected atomic.Bool
}

// New creates a Signal with no connections.
func New() *Signal {
	return &Signal{}
}

// Connect registers a handler and returns its connection. The handler is
// called for every subsequent Emit until the connection is disconnected.
func (s *Signal) Connect(handler Handler) *Connection {
	c := &Connection{sig: s, handler: handler}
	c.connected.Store(true)

	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()
	return c
}

// Emit delivers v to every live connection in connection order.
func (s *Signal) Emit(v any) {
	s.mu.Lock()
	conns := make([]*Connection, len(s.conns))
	copy(conns, s.conns)
	s.mu.Unlock()

	for _, c := range conns {
		if c.connected.Load() {
			safeCall(c.handler, v)
		}
	}
}

// ConnectionCount returns the number of live connections.
func (s *Signal) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// DisconnectAll disconnects every live connection.
func (s *Signal) DisconnectAll() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, c := range conns {
		c.connected.Store(false)
	}
}

// remove drops a disconnected connection from the slice.
func (s *Signal) remove(c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.conns {
		if existing == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			return
		}
	}
}

// Connected reports whether the connection is still live.
func (c *Connection) Connected() bool {
	return c.connected.Load()
}

// Disconnect removes the connection from its signal. Disconnecting an
// already-disconnected connection is a no-op.
func (c *Connection) Disconnect() {
	if !c.connected.CompareAndSwap(true, false) {
		return
	}
	c.sig.remove(c)
}

// safeCall invokes a handler and recovers from any panics, so one
// misbehaving handler cannot block delivery to the others.
func safeCall(handler Handler, v any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: signal handler panicked: %v\n%s", r, debug.Stack())
		}
	}()
	handler(v)
}
