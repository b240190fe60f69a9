package qop

import (
	"context"
	"fmt"
	"strings"

	"github.com/qop-dev/qop/internal/log"
)

// ListDevices returns the devices of the explicit or default provider that
// the resolved token may use. Extra params pass through as provider-side
// filters.
func ListDevices(ctx context.Context, opts ...Option) ([]DeviceInfo, error) {
	co := newCallOptions(opts)
	p, err := ResolveProvider(co.provider)
	if err != nil {
		return nil, err
	}
	tok, err := tokenForProvider(co, p)
	if err != nil {
		return nil, err
	}
	b, err := backendFor(p)
	if err != nil {
		return nil, err
	}
	log.Debug("listing devices", "provider", p.Name())
	return b.ListDevices(ctx, tok, co.params)
}

// ListProperties returns the property mapping of the explicit or default
// device: calibration data, topology, whatever the provider reports.
func ListProperties(ctx context.Context, opts ...Option) (Params, error) {
	co := newCallOptions(opts)
	dev, err := ResolveDevice(co.device, co.provider)
	if err != nil {
		return nil, err
	}
	tok, err := tokenForDevice(co, dev)
	if err != nil {
		return nil, err
	}
	b, err := backendFor(dev.Provider())
	if err != nil {
		return nil, err
	}
	pl, ok := b.(PropertyLister)
	if !ok {
		return nil, capabilityError(dev.Provider(), "device properties")
	}
	log.Debug("listing properties", "device", dev.String())
	return pl.ListProperties(ctx, dev, tok)
}

// GetTask builds a task handle without contacting any backend. A composite
// "<device>~~<id>" reference is decomposed unless an explicit device or
// provider option is given, in which case the id is taken verbatim.
func GetTask(id string, opts ...Option) (Task, error) {
	co := newCallOptions(opts)
	if co.device == nil && co.provider == nil {
		return resolveTask(id)
	}
	if strings.TrimSpace(id) == "" {
		return Task{}, fmt.Errorf("%w: empty id", ErrInvalidTaskRef)
	}
	dev, err := ResolveDevice(co.device, co.provider)
	if err != nil {
		return Task{}, err
	}
	return NewTask(id, dev), nil
}

// GetTaskDetails fetches the provider's full record for a task. The task
// reference may be a Task or a bare or composite id string; the device
// comes from the task itself, the device option, or the session default,
// in that order.
func GetTaskDetails(ctx context.Context, ref any, opts ...Option) (TaskDetails, error) {
	co := newCallOptions(opts)
	task, dev, err := co.resolveTaskAndDevice(ref)
	if err != nil {
		return TaskDetails{}, err
	}
	tok, err := tokenForDevice(co, dev)
	if err != nil {
		return TaskDetails{}, err
	}
	b, err := backendFor(dev.Provider())
	if err != nil {
		return TaskDetails{}, err
	}
	log.Debug("fetching task details", "task", task.ID(), "device", dev.String())
	return b.TaskDetails(ctx, task, tok)
}

// SubmitTask submits a circuit to the explicit or default device and
// returns its handle.
func SubmitTask(ctx context.Context, opts ...Option) (Task, error) {
	co := newCallOptions(opts)
	dev, err := ResolveDevice(co.device, co.provider)
	if err != nil {
		return Task{}, err
	}
	tok, err := tokenForDevice(co, dev)
	if err != nil {
		return Task{}, err
	}
	b, err := backendFor(dev.Provider())
	if err != nil {
		return Task{}, err
	}
	log.Debug("submitting task", "device", dev.String(), "shots", co.shots)
	return b.SubmitTask(ctx, SubmitRequest{
		Device: dev,
		Token:  tok,
		Shots:  co.shots,
		Source: co.source,
		Params: co.params,
	})
}

// ResubmitTask reruns a task under a fresh handle on the provider that ran
// it. Fails with ErrUnsupportedProvider when the backend cannot resubmit.
func ResubmitTask(ctx context.Context, ref any, opts ...Option) (Task, error) {
	co := newCallOptions(opts)
	task, dev, err := co.resolveTaskAndDevice(ref)
	if err != nil {
		return Task{}, err
	}
	tok, err := tokenForDevice(co, dev)
	if err != nil {
		return Task{}, err
	}
	b, err := backendFor(dev.Provider())
	if err != nil {
		return Task{}, err
	}
	rs, ok := b.(Resubmitter)
	if !ok {
		return Task{}, capabilityError(dev.Provider(), "resubmission")
	}
	log.Debug("resubmitting task", "task", task.ID(), "device", dev.String())
	return rs.ResubmitTask(ctx, task, tok)
}

// RemoveTask cancels or deletes a task and returns the handle it resolved.
// Fails with ErrUnsupportedProvider when the backend cannot remove tasks.
func RemoveTask(ctx context.Context, ref any, opts ...Option) (Task, error) {
	co := newCallOptions(opts)
	task, dev, err := co.resolveTaskAndDevice(ref)
	if err != nil {
		return Task{}, err
	}
	tok, err := tokenForDevice(co, dev)
	if err != nil {
		return Task{}, err
	}
	b, err := backendFor(dev.Provider())
	if err != nil {
		return Task{}, err
	}
	rm, ok := b.(Remover)
	if !ok {
		return Task{}, capabilityError(dev.Provider(), "task removal")
	}
	log.Debug("removing task", "task", task.ID(), "device", dev.String())
	if err := rm.RemoveTask(ctx, task, tok); err != nil {
		return Task{}, err
	}
	return task, nil
}

// ListTasks returns handles for the tasks visible to the resolved token.
// With a device option the listing is restricted to that device; otherwise
// it covers the explicit or default provider. The credential is the
// provider-level token in both cases; device-scoped tokens are not
// consulted for listings. Extra params pass through as provider-side
// filters.
func ListTasks(ctx context.Context, opts ...Option) ([]Task, error) {
	co := newCallOptions(opts)
	var (
		p   Provider
		dev Device
		err error
	)
	if co.device != nil {
		dev, err = ResolveDevice(co.device, co.provider)
		if err != nil {
			return nil, err
		}
		p = dev.Provider()
	} else {
		p, err = ResolveProvider(co.provider)
		if err != nil {
			return nil, err
		}
	}
	tok, err := tokenForProvider(co, p)
	if err != nil {
		return nil, err
	}
	b, err := backendFor(p)
	if err != nil {
		return nil, err
	}
	log.Debug("listing tasks", "provider", p.Name(), "device", dev.String())
	return b.ListTasks(ctx, TasksRequest{Device: dev, Token: tok, Filters: co.params})
}

// resolveTaskAndDevice normalizes a task reference and binds a device to
// it. The task's own device wins when present; otherwise the device option
// or the session default applies. An explicit device option suppresses
// composite decomposition of string references.
func (co *callOptions) resolveTaskAndDevice(ref any) (Task, Device, error) {
	var task Task
	if s, ok := ref.(string); ok && co.device != nil {
		if strings.TrimSpace(s) == "" {
			return Task{}, Device{}, fmt.Errorf("%w: empty id", ErrInvalidTaskRef)
		}
		task = NewTask(s, Device{})
	} else {
		var err error
		task, err = resolveTask(ref)
		if err != nil {
			return Task{}, Device{}, err
		}
	}
	if dev, ok := task.Device(); ok {
		return task, dev, nil
	}
	dev, err := ResolveDevice(co.device, co.provider)
	if err != nil {
		return Task{}, Device{}, err
	}
	return NewTask(task.ID(), dev), dev, nil
}

func capabilityError(p Provider, op string) error {
	return fmt.Errorf("%w: %s does not support %s", ErrUnsupportedProvider, p.Name(), op)
}
