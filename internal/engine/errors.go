package engine

import "errors"

var (
	// ErrNotReady is returned when the engine is used before Initialize.
	ErrNotReady = errors.New("engine is not initialized")

	// ErrEmptyVocab is returned when a card is requested from an empty
	// vocabulary set.
	ErrEmptyVocab = errors.New("vocabulary set is empty")

	// ErrUnknownKey is returned when an outcome is recorded for a key with
	// no ledger entry. Callers may ignore it.
	ErrUnknownKey = errors.New("no ledger entry for key")
)
