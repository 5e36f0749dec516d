package domain

import (
	"errors"
	"testing"
)

func TestStorageError(t *testing.T) {
	baseErr := errors.New("database is locked")

	t.Run("busy error is retriable", func(t *testing.T) {
		err := NewBusyStorageError("insert", baseErr)

		if !err.IsRetriable() {
			t.Error("Expected busy error to be retriable")
		}

		if err.Error() != "storage insert: database is locked" {
			t.Errorf("Error message = %q, want %q", err.Error(), "storage insert: database is locked")
		}

		if !errors.Is(err, baseErr) {
			t.Error("Expected error to wrap baseErr")
		}
	})

	t.Run("permanent error", func(t *testing.T) {
		err := NewStorageError("insert", errors.New("no such table"))

		if err.IsRetriable() {
			t.Error("Expected permanent error to not be retriable")
		}
	})

	t.Run("IsRetriable helper", func(t *testing.T) {
		busy := NewBusyStorageError("insert", baseErr)
		permanent := NewStorageError("insert", baseErr)
		plain := errors.New("plain error")

		if !IsRetriable(busy) {
			t.Error("IsRetriable should return true for busy storage error")
		}

		if IsRetriable(permanent) {
			t.Error("IsRetriable should return false for permanent storage error")
		}

		if IsRetriable(plain) {
			t.Error("IsRetriable should return false for plain error")
		}
	})
}

func TestFeedFatalError(t *testing.T) {
	err := &FeedFatalError{Msg: "invalid login."}

	if err.IsRetriable() {
		t.Error("FeedFatalError should never be retriable")
	}

	expected := "fatal feed condition: invalid login."
	if err.Error() != expected {
		t.Errorf("Error message = %q, want %q", err.Error(), expected)
	}

	var ffe *FeedFatalError
	if !errors.As(error(err), &ffe) {
		t.Error("errors.As should match *FeedFatalError")
	}
}
