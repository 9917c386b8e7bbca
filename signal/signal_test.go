package signal

import (
	"sync"
	"testing"
)

func TestConnect_HandlerReceivesEmits(t *testing.T) {
	s := New()

	var received []any
	s.Connect(func(v any) {
		received = append(received, v)
	})

	s.Emit("one")
	s.Emit("two")

	if len(received) != 2 {
		t.Fatalf("Expected 2 deliveries, got %d", len(received))
	}
	if received[0] != "one" || received[1] != "two" {
		t.Errorf("Expected deliveries in emit order, got %v", received)
	}
}

func TestConnect_MultipleHandlersInConnectionOrder(t *testing.T) {
	s := New()

	var order []int
	s.Connect(func(v any) { order = append(order, 1) })
	s.Connect(func(v any) { order = append(order, 2) })

	s.Emit(nil)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected handlers called in connection order, got %v", order)
	}
}

func TestDisconnect_StopsDelivery(t *testing.T) {
	s := New()

	calls := 0
	conn := s.Connect(func(v any) { calls++ })

	s.Emit(nil)
	conn.Disconnect()
	s.Emit(nil)

	if calls != 1 {
		t.Errorf("Expected no delivery after disconnect, got %d calls", calls)
	}
	if conn.Connected() {
		t.Error("Expected connection to report disconnected")
	}
	if s.ConnectionCount() != 0 {
		t.Errorf("Expected 0 connections, got %d", s.ConnectionCount())
	}
}

func TestDisconnect_Idempotent(t *testing.T) {
	s := New()

	conn := s.Connect(func(v any) {})
	conn.Disconnect()
	conn.Disconnect()

	if s.ConnectionCount() != 0 {
		t.Errorf("Expected 0 connections after repeated disconnect, got %d", s.ConnectionCount())
	}
}

func TestDisconnect_OnlyRemovesItself(t *testing.T) {
	s := New()

	calls := 0
	first := s.Connect(func(v any) { t.Error("Disconnected handler should not be called") })
	s.Connect(func(v any) { calls++ })

	first.Disconnect()
	s.Emit(nil)

	if calls != 1 {
		t.Errorf("Expected remaining handler called, got %d", calls)
	}
}

func TestEmit_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	s := New()

	calls := 0
	s.Connect(func(v any) { panic("handler exploded") })
	s.Connect(func(v any) { calls++ })

	s.Emit(nil)

	if calls != 1 {
		t.Errorf("Expected second handler called despite panic, got %d", calls)
	}
}

func TestDisconnectAll(t *testing.T) {
	s := New()

	c1 := s.Connect(func(v any) {})
	c2 := s.Connect(func(v any) {})

	s.DisconnectAll()

	if c1.Connected() || c2.Connected() {
		t.Error("Expected all connections disconnected")
	}
	if s.ConnectionCount() != 0 {
		t.Errorf("Expected 0 connections, got %d", s.ConnectionCount())
	}
}

func TestSignal_ConcurrentConnectAndEmit(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			conn := s.Connect(func(v any) {})
			conn.Disconnect()
		}()
		go func() {
			defer wg.Done()
			s.Emit(nil)
		}()
	}
	wg.Wait()

	if s.ConnectionCount() != 0 {
		t.Errorf("Expected all connections removed, got %d", s.ConnectionCount())
	}
}
