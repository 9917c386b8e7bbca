package bin

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKindOf_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"nil", nil, KindEmpty},
		{"typed nil pointer", (*destroyable)(nil), KindEmpty},
		{"typed nil func", (func())(nil), KindEmpty},
		{"plain func", func() {}, KindCallback},
		{"func returning error", func() error { return nil }, KindCallback},
		{"named func type", context.CancelFunc(func() {}), KindCallback},
		{"variadic-only func", func(...string) {}, KindCallback},
		{"func with args", func(int) {}, KindOpaque},
		{"func with required and variadic args", func(int, ...string) {}, KindOpaque},
		{"destroyer", &destroyable{}, KindDisposer},
		{"closer", &closeable{}, KindDisposer},
		{"connection", &recordingConn{}, KindConnection},
		{"timer handle", time.NewTimer(time.Hour), KindHandle},
		{"stopper", &stoppable{}, KindHandle},
		{"cancel plus destroy", &composite{}, KindComposite},
		{"opaque struct", &opaque{name: "x"}, KindOpaque},
		{"plain string", "not disposable", KindOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.value); got != tt.want {
				t.Errorf("KindOf(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDispose_Callback(t *testing.T) {
	invoked := 0
	fn := func() { invoked++ }

	if err := dispose(fn, KindOf(fn)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if invoked != 1 {
		t.Errorf("Expected callback invoked once, got %d", invoked)
	}
}

func TestDispose_VariadicCallback(t *testing.T) {
	invoked := 0
	fn := func(...string) { invoked++ }

	if err := dispose(fn, KindOf(fn)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if invoked != 1 {
		t.Errorf("Expected callback invoked once, got %d", invoked)
	}
}

func TestDispose_CallbackErrorCaptured(t *testing.T) {
	wantErr := errors.New("release failed")
	fn := func() error { return wantErr }

	err := dispose(fn, KindOf(fn))
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected captured error %v, got %v", wantErr, err)
	}
}

func TestDispose_PanicCaptured(t *testing.T) {
	fn := func() { panic("boom") }

	err := dispose(fn, KindOf(fn))
	if err == nil {
		t.Fatal("Expected recovered panic as error")
	}
}

func TestDispose_ConnectedDisconnects(t *testing.T) {
	conn := &recordingConn{connected: true}

	if err := dispose(conn, KindOf(conn)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if conn.disconnects != 1 {
		t.Errorf("Expected 1 disconnect, got %d", conn.disconnects)
	}
	if conn.connected {
		t.Error("Expected connection disconnected")
	}
}

func TestDispose_AlreadyDisconnectedIsNoop(t *testing.T) {
	conn := &recordingConn{connected: false}

	if err := dispose(conn, KindOf(conn)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if conn.disconnects != 0 {
		t.Errorf("Disconnected connection must not be disconnected again, got %d", conn.disconnects)
	}
}

func TestDispose_HandleStops(t *testing.T) {
	h := &stoppable{}

	if err := dispose(h, KindOf(h)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if h.stops != 1 {
		t.Errorf("Expected cancellation requested once, got %d", h.stops)
	}
}

func TestDispose_TimerHandle(t *testing.T) {
	timer := time.NewTimer(time.Hour)

	if err := dispose(timer, KindOf(timer)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	// Stop returns false once the timer is no longer active.
	if timer.Stop() {
		t.Error("Expected timer already stopped")
	}
}

func TestDispose_CompositeRunsBothCancelAndDestroy(t *testing.T) {
	c := &composite{}

	if err := dispose(c, KindOf(c)); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
	if c.cancels != 1 {
		t.Errorf("Expected 1 cancel, got %d", c.cancels)
	}
	if c.destroys != 1 {
		t.Errorf("Expected 1 destroy, got %d", c.destroys)
	}
}

func TestDispose_CloserErrorSwallowedAndReturned(t *testing.T) {
	wantErr := errors.New("close failed")
	c := &closeable{err: wantErr}

	err := dispose(c, KindOf(c))
	if !errors.Is(err, wantErr) {
		t.Errorf("Expected captured close error, got %v", err)
	}
	if c.closes != 1 {
		t.Errorf("Expected 1 close, got %d", c.closes)
	}
}

func TestDispose_OpaqueIsDropped(t *testing.T) {
	v := &opaque{name: "plain"}

	if err := dispose(v, KindOf(v)); err != nil {
		t.Errorf("Dropping a non-disposable value must not error, got %v", err)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindEmpty, "empty"},
		{KindCallback, "callback"},
		{KindDisposer, "disposer"},
		{KindConnection, "connection"},
		{KindHandle, "handle"},
		{KindComposite, "composite"},
		{KindOpaque, "opaque"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
