package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidTag, "bad interpreter format: %s", "xx311")

	if err.Code != ErrCodeInvalidTag {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidTag)
	}
	want := "INVALID_TAG: bad interpreter format: xx311"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch %s", "requests")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() should return the cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodePipNotFound, "neither pip nor pip3 was found")

	if !Is(err, ErrCodePipNotFound) {
		t.Error("Is() should match the error's code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodePipNotFound) {
		t.Error("Is() should not match a plain error")
	}

	// Codes survive wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("download: %w", err)
	if !Is(wrapped, ErrCodePipNotFound) {
		t.Error("Is() should match through fmt.Errorf wrapping")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeIO, "write failed")); got != ErrCodeIO {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeIO)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeFileNotFound, "the file reqs.txt does not exist")
	if got := UserMessage(err); got != "the file reqs.txt does not exist" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
