package registry

import (
	"errors"
	"fmt"
)

// Errors wrapped by RegistrationError.
var (
	// ErrAlreadyRegistered indicates a node id is already taken.
	ErrAlreadyRegistered = errors.New("configuration node already registered")

	// ErrPropertyConflict indicates a property key is already declared by another node.
	ErrPropertyConflict = errors.New("property already declared")

	// ErrInvalidNode indicates the node failed schema validation.
	ErrInvalidNode = errors.New("invalid configuration node")

	// ErrUnknownProperty indicates a lookup of a key no node declares.
	ErrUnknownProperty = errors.New("unknown property")
)

// RegistrationError reports why a registration batch was rejected.
type RegistrationError struct {
	// NodeID is the id of the offending node (may be empty for invalid nodes).
	NodeID string
	// Property is the conflicting property key, if any.
	Property string
	// Owner is the id of the node that already declares Property.
	Owner string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("registering configuration %q: property %q (declared by %q): %v", e.NodeID, e.Property, e.Owner, e.Err)
	}
	return fmt.Sprintf("registering configuration %q: %v", e.NodeID, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// UnknownPropertyError is returned when validating a key that is not registered.
type UnknownPropertyError struct {
	Key string
}

// Error implements the error interface.
func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownProperty, e.Key)
}

// Is implements error matching for UnknownPropertyError.
func (e *UnknownPropertyError) Is(target error) bool {
	return target == ErrUnknownProperty
}
