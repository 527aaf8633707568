package errors

import (
	stdlib "errors"
	"fmt"
	"testing"
)

func TestRegisterPanicsOnDuplicateCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	// Code 2 is already taken by ErrUnauthorized.
	Register(2, "duplicate code")
}

func TestErrIs(t *testing.T) {
	cases := map[string]struct {
		kind   *Error
		err    error
		wantIs bool
	}{
		"instance of the same root": {
			kind:   ErrNotFound,
			err:    ErrNotFound,
			wantIs: true,
		},
		"wrapped root": {
			kind:   ErrNotFound,
			err:    Wrap(ErrNotFound, "proposal 42"),
			wantIs: true,
		},
		"deeply wrapped root": {
			kind:   ErrState,
			err:    Wrap(Wrap(ErrState, "inner"), "outer"),
			wantIs: true,
		},
		"different root": {
			kind:   ErrNotFound,
			err:    Wrap(ErrUnauthorized, "not for you"),
			wantIs: false,
		},
		"stdlib error": {
			kind:   ErrNotFound,
			err:    stdlib.New("stdlib"),
			wantIs: false,
		},
		"nil error": {
			kind:   ErrNotFound,
			err:    nil,
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantIs {
				t.Fatalf("want %v, got %v", tc.wantIs, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "description"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
	if err := Wrapf(nil, "description %d", 42); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(ErrNotFound, "proposal %d", 42)
	const want = "proposal 42: not found"
	if got := err.Error(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	inner := Wrap(ErrState, "inner")
	st := stackTrace(inner)
	if st == nil {
		t.Fatal("no stack trace attached")
	}
	outer := Wrap(inner, "outer")
	if got := stackTrace(outer); fmt.Sprintf("%v", got) != fmt.Sprintf("%v", st) {
		t.Fatal("outer wrap must reuse the inner stack trace")
	}
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("totally unexpected")
	}
	err := run()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
}
