package qop

import (
	"fmt"
	"strings"
)

// Sep2 delimits the device from the task id inside a composite task
// reference, as in "tencent::20xmon~~f1f47115". It is distinct from Sep so
// that full device names survive unambiguously inside composite references.
// Like Sep, it is part of the wire contract: device names and task ids must
// never contain it.
const Sep2 = "~~"

// Task is a handle for a submitted unit of work: an opaque id, optionally
// bound to the Device it was submitted to.
type Task struct {
	id     string
	device Device
}

// NewTask builds a task handle from a bare id and an optional device.
// Pass the zero Device for a task with no device attached.
func NewTask(id string, dev Device) Task {
	return Task{id: id, device: dev}
}

// SplitTaskID decomposes a composite task reference of the form
// "<device>~~<id>" into its device and bare id. The device part is a full or
// bare device name and is parsed as by ParseDevice with no explicit provider.
// A reference without the separator is returned unchanged with a zero Device.
func SplitTaskID(raw string) (Device, string, error) {
	before, after, ok := strings.Cut(raw, Sep2)
	if !ok {
		return Device{}, raw, nil
	}
	if after == "" {
		return Device{}, "", fmt.Errorf("%w: empty id in %q", ErrInvalidTaskRef, raw)
	}
	dev, err := ParseDevice(before, Provider{})
	if err != nil {
		return Device{}, "", err
	}
	return dev, after, nil
}

// resolveTask normalizes any accepted task reference into a Task. Accepted
// shapes: a Task, a non-nil *Task, or a string, which may be a composite
// "<device>~~<id>" reference and is then decomposed via SplitTaskID.
func resolveTask(ref any) (Task, error) {
	switch v := ref.(type) {
	case Task:
		if v.id == "" {
			return Task{}, fmt.Errorf("%w: empty id", ErrInvalidTaskRef)
		}
		return v, nil
	case *Task:
		if v == nil {
			return Task{}, fmt.Errorf("%w: nil task", ErrInvalidTaskRef)
		}
		return resolveTask(*v)
	case string:
		if strings.TrimSpace(v) == "" {
			return Task{}, fmt.Errorf("%w: empty id", ErrInvalidTaskRef)
		}
		dev, id, err := SplitTaskID(v)
		if err != nil {
			return Task{}, err
		}
		return Task{id: id, device: dev}, nil
	default:
		return Task{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidTaskRef, ref)
	}
}

// ID returns the bare task id.
func (t Task) ID() string { return t.id }

// Device returns the device the task is bound to, and false when the task
// was never attached to one. Callers that need a device, for example to
// look up a device-scoped token, fall back to the default context.
func (t Task) Device() (Device, bool) {
	return t.device, !t.device.IsZero()
}

// String returns the composite task reference when a device is attached,
// or the bare id otherwise.
func (t Task) String() string {
	if t.device.IsZero() {
		return t.id
	}
	return t.device.String() + Sep2 + t.id
}

// MarshalText implements encoding.TextMarshaler using the composite task
// reference.
func (t Task) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, decomposing composite
// references as SplitTaskID does.
func (t *Task) UnmarshalText(text []byte) error {
	parsed, err := resolveTask(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
