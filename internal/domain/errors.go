package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// StorageError represents a persistence failure. Busy contention is
// retriable; anything else is permanent and propagates immediately.
type StorageError struct {
	Op   string // Operation that failed (e.g., "insert", "open")
	Err  error  // Underlying error
	Busy bool   // True when the store reported transient contention
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) IsRetriable() bool {
	return e.Busy
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewBusyStorageError creates a retriable contention error
func NewBusyStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err, Busy: true}
}

// NewStorageError creates a permanent, non-retriable storage error
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err, Busy: false}
}

// FeedFatalError is raised when the feed delivers a session-fatal control
// message (authentication failure, license denial). It halts the consumer
// loop and disables reconnection. Never retriable.
type FeedFatalError struct {
	Msg string // the raw control message text
}

func (e *FeedFatalError) Error() string {
	return "fatal feed condition: " + e.Msg
}

func (e *FeedFatalError) IsRetriable() bool {
	return false
}

var (
	// ErrNotTradeMessage is returned by the parser for any message that is
	// not a structurally valid trade report. Never fatal.
	ErrNotTradeMessage = errors.New("not a trade message")

	// ErrRetriesExhausted is returned when a retriable operation still
	// fails after its attempt budget.
	ErrRetriesExhausted = errors.New("retries exhausted")
)
