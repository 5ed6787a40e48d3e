package foundation

import (
	"errors"
	"testing"
)

func TestResultOk(t *testing.T) {
	r := Ok[int, error](42)

	if !r.IsOk() {
		t.Fatal("expected IsOk() to be true")
	}
	if r.IsErr() {
		t.Fatal("expected IsErr() to be false")
	}
	if got := r.Unwrap(); got != 42 {
		t.Errorf("Unwrap() = %d, want 42", got)
	}
	if got := r.UnwrapOr(7); got != 42 {
		t.Errorf("UnwrapOr(7) = %d, want 42", got)
	}
}

func TestResultErr(t *testing.T) {
	sentinel := errors.New("boom")
	r := Err[int](sentinel)

	if r.IsOk() {
		t.Fatal("expected IsOk() to be false")
	}
	if got := r.UnwrapOr(7); got != 7 {
		t.Errorf("UnwrapOr(7) = %d, want 7", got)
	}
	if got := r.UnwrapErr(); !errors.Is(got, sentinel) {
		t.Errorf("UnwrapErr() = %v, want %v", got, sentinel)
	}
}

func TestResultToTuple(t *testing.T) {
	v, err := Ok[string, error]("hi").ToTuple()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hi" {
		t.Errorf("value = %q, want %q", v, "hi")
	}

	sentinel := errors.New("boom")
	v, err = Err[string](sentinel).ToTuple()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if v != "" {
		t.Errorf("expected zero value, got %q", v)
	}
}

func TestResultFromTuple(t *testing.T) {
	if r := FromTuple[int, error](1, nil); !r.IsOk() {
		t.Error("FromTuple with nil error should be Ok")
	}
	if r := FromTuple[int](0, errors.New("boom")); !r.IsErr() {
		t.Error("FromTuple with error should be Err")
	}
}

func TestUnwrapPanicsOnErr(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Unwrap on Err to panic")
		}
	}()
	Err[int](errors.New("boom")).Unwrap()
}
