package types

import "errors"

// Storage keys. The names match the browser build so its localStorage
// payloads can be imported unchanged.
const (
	StacksKey      = "stacked_apps"
	DisplayModeKey = "stacked_dark_mode"
)

// Store is a durable, synchronous key-value store. Callers attach to a
// backend, read and write string values by key, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if the backend needs one. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Get and Set return ErrStoreDetached.
	Detach() error

	// Get returns the value stored under key. ok is false when the key has
	// never been set.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value. The write
	// is durable when Set returns.
	Set(key, value string) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrInvalidKey      = errors.New("invalid key")
)
