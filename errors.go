package formbuilder

import (
	"errors"
	"fmt"
)

// Universe names the key set a presence check ran against.
type Universe int

const (
	// UniverseSource is the set of visible keys of the Store.
	UniverseSource Universe = iota
	// UniverseRecord is the set of keys already accumulated in the Record.
	UniverseRecord
)

func (u Universe) String() string {
	switch u {
	case UniverseSource:
		return "source"
	case UniverseRecord:
		return "record"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidKey matches every missing required key error.
	ErrInvalidKey = errors.New("formbuilder: invalid key")

	// ErrKeyNotFound matches required keys absent from the form data.
	ErrKeyNotFound = errors.New("formbuilder: key not found in form data")

	// ErrTransformedKeyNotFound matches required keys absent from the accumulated record.
	ErrTransformedKeyNotFound = errors.New("formbuilder: key not found in transformed data")
)

// KeyError reports a required key that is absent from the universe it was resolved against.
type KeyError struct {
	Key      string
	Universe Universe
}

func (e *KeyError) Error() string {
	if e.Universe == UniverseRecord {
		return fmt.Sprintf("formbuilder: key %q has not been transformed", e.Key)
	}
	return fmt.Sprintf("formbuilder: key %q does not exist in the form data", e.Key)
}

// Is matches ErrInvalidKey and the sentinel of the error's universe.
func (e *KeyError) Is(target error) bool {
	switch target {
	case ErrInvalidKey:
		return true
	case ErrKeyNotFound:
		return e.Universe == UniverseSource
	case ErrTransformedKeyNotFound:
		return e.Universe == UniverseRecord
	}
	return false
}

// TransformError wraps a failure returned by a TransformFunc.
type TransformError struct {
	Key string // Destination key
	Err error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("formbuilder: transform %q: %v", e.Key, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }
