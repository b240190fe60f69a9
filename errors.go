package qop

import (
	"errors"

	"github.com/qop-dev/qop/token"
)

var (
	// ErrUnsupportedProvider is returned when an operation is dispatched to a
	// provider with no registered backend, or when the registered backend does
	// not implement the requested operation.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrAmbiguousDevice is returned when a provider is given without a device
	// in a context that needs a concrete device to proceed.
	ErrAmbiguousDevice = errors.New("device not specified")

	// ErrProviderDeviceMismatch is returned when a device name embeds a
	// provider that conflicts with an explicitly supplied provider argument.
	ErrProviderDeviceMismatch = errors.New("provider/device mismatch")

	// ErrInvalidProviderRef is returned when a provider reference is neither a
	// name string, a Provider handle, nor nil, or when the name is malformed.
	ErrInvalidProviderRef = errors.New("invalid provider reference")

	// ErrInvalidDeviceRef is the device analogue of ErrInvalidProviderRef.
	ErrInvalidDeviceRef = errors.New("invalid device reference")

	// ErrInvalidTaskRef is returned when a task reference is neither an id
	// string, a Task handle, nor a non-nil *Task, or when the id is empty.
	ErrInvalidTaskRef = errors.New("invalid task reference")

	// ErrTokenStoreCorrupt is returned when the persisted token store cannot
	// be decoded. It aliases token.ErrCorrupt so callers can match either.
	ErrTokenStoreCorrupt = token.ErrCorrupt
)
