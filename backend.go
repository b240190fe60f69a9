package qop

import (
	"context"
	"time"
)

// Params carries provider-specific fields that pass through the dispatch
// layer without interpretation: extra submission fields, server-side list
// filters, raw device properties.
type Params map[string]any

// DeviceInfo describes one device as reported by its provider.
type DeviceInfo struct {
	Device Device `json:"device"`
	State  string `json:"state,omitempty"`
	Qubits int    `json:"qubits,omitempty"`
	Extra  Params `json:"extra,omitempty"`
}

// SubmitRequest is the normalized form of a task submission handed to a
// backend. Device and Token are always resolved by the dispatch layer
// before the backend sees the request.
type SubmitRequest struct {
	Device Device
	Token  string
	Shots  int // negative when the caller left it to the backend default
	Source string
	Params Params
}

// TasksRequest asks a backend for the tasks visible to a token. A zero
// Device means all tasks for the provider; otherwise the listing is
// restricted to that device.
type TasksRequest struct {
	Device  Device
	Token   string
	Filters Params
}

// TaskDetails is the full record a provider keeps for one task.
type TaskDetails struct {
	Task    Task             `json:"task"`
	Device  Device           `json:"device"`
	State   string           `json:"state"`
	Shots   int              `json:"shots"`
	Source  string           `json:"source,omitempty"`
	Created time.Time        `json:"created"`
	Results map[string]int64 `json:"results,omitempty"`
	Extra   Params           `json:"extra,omitempty"`
}

// Backend is implemented by every provider backend. It covers the four
// operations all providers support; everything else is an optional
// capability asserted at dispatch time.
type Backend interface {
	// Name returns the provider identifier (e.g., "tencent", "local").
	Name() string

	// ListDevices returns the devices the token may use.
	ListDevices(ctx context.Context, token string, filters Params) ([]DeviceInfo, error)

	// SubmitTask submits a circuit and returns a handle for it.
	SubmitTask(ctx context.Context, req SubmitRequest) (Task, error)

	// TaskDetails fetches the provider's record for a task. The task's
	// device is resolved before the call.
	TaskDetails(ctx context.Context, task Task, token string) (TaskDetails, error)

	// ListTasks returns handles for the tasks visible to the token.
	ListTasks(ctx context.Context, req TasksRequest) ([]Task, error)
}

// PropertyLister is an optional interface for backends that expose detailed
// calibration and topology properties per device.
type PropertyLister interface {
	ListProperties(ctx context.Context, dev Device, token string) (Params, error)
}

// Resubmitter is an optional interface for backends that can rerun a
// completed or aborted task under a fresh handle.
type Resubmitter interface {
	ResubmitTask(ctx context.Context, task Task, token string) (Task, error)
}

// Remover is an optional interface for backends that support cancelling or
// deleting a task.
type Remover interface {
	RemoveTask(ctx context.Context, task Task, token string) error
}

// Describer is an optional interface for backends that describe themselves
// in listings.
type Describer interface {
	Description() string
}
