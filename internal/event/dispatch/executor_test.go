package dispatch

import (
	"context"
	"errors"
	"testing"
)

func TestExecute(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		handler  HandlerFunc
		wantErr  error
		panicked bool
	}{
		{
			name:    "success",
			handler: func(context.Context, any) error { return nil },
		},
		{
			name:    "error",
			handler: func(context.Context, any) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name:     "panic",
			handler:  func(context.Context, any) error { panic("bad listener") },
			panicked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Execute(context.Background(), "evt", tt.handler, nil)
			if !errors.Is(r.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", r.Error, tt.wantErr)
			}
			if r.Panicked != tt.panicked {
				t.Errorf("Panicked = %v, want %v", r.Panicked, tt.panicked)
			}
			if r.IsSuccess() != (tt.wantErr == nil && !tt.panicked) {
				t.Errorf("IsSuccess = %v", r.IsSuccess())
			}
		})
	}
}

func TestExecutePanicHandler(t *testing.T) {
	var gotEvent, gotValue any
	var gotStack []byte
	onPanic := func(event, value any, stack []byte) {
		gotEvent, gotValue, gotStack = event, value, stack
	}

	r := Execute(context.Background(), "evt",
		HandlerFunc(func(context.Context, any) error { panic(42) }), onPanic)

	if !r.Panicked || r.PanicValue != 42 {
		t.Fatalf("unexpected result %+v", r)
	}
	if gotEvent != "evt" || gotValue != 42 || len(gotStack) == 0 {
		t.Errorf("panic handler got %v %v (%d bytes)", gotEvent, gotValue, len(gotStack))
	}
}

func TestExecutePanickingPanicHandler(t *testing.T) {
	r := Execute(context.Background(), nil,
		HandlerFunc(func(context.Context, any) error { panic("first") }),
		func(any, any, []byte) { panic("second") })
	if !r.Panicked {
		t.Error("expected the handler panic to be reported")
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	r := Execute(ctx, nil, HandlerFunc(func(context.Context, any) error {
		called = true
		return nil
	}), nil)

	if called {
		t.Error("handler should not run with a done context")
	}
	if !r.Skipped || !errors.Is(r.Error, context.Canceled) {
		t.Errorf("unexpected result %+v", r)
	}
}
