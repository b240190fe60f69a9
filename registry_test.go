package qop

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// stubBackend implements only the core Backend interface.
type stubBackend struct {
	name string
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) ListDevices(ctx context.Context, token string, filters Params) ([]DeviceInfo, error) {
	return nil, nil
}

func (s *stubBackend) SubmitTask(ctx context.Context, req SubmitRequest) (Task, error) {
	return Task{}, nil
}

func (s *stubBackend) TaskDetails(ctx context.Context, task Task, token string) (TaskDetails, error) {
	return TaskDetails{}, nil
}

func (s *stubBackend) ListTasks(ctx context.Context, req TasksRequest) ([]Task, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	b := &stubBackend{name: "Acme"}
	Register(b)

	got, ok := Lookup(MustProvider("acme"))
	if !ok {
		t.Fatal("Lookup after Register: not found")
	}
	if got != b {
		t.Errorf("Lookup = %v, want %v", got, b)
	}

	if _, ok := Lookup(MustProvider("other")); ok {
		t.Error("Lookup(other) found a backend")
	}
}

func TestRegisterPanics(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		fn()
	}

	assertPanics("Register(nil)", func() { Register(nil) })
	assertPanics("Register(bad name)", func() { Register(&stubBackend{name: "a::b"}) })
	assertPanics("Register(empty name)", func() { Register(&stubBackend{name: ""}) })
}

func TestListProviders(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	if got := ListProviders(); !reflect.DeepEqual(got, []string{"local", "tencent"}) {
		t.Errorf("ListProviders() = %v, want built-ins only", got)
	}

	Register(&stubBackend{name: "acme"})
	if got := ListProviders(); !reflect.DeepEqual(got, []string{"acme", "local", "tencent"}) {
		t.Errorf("ListProviders() = %v, want sorted union", got)
	}

	// Registering a built-in name does not duplicate it.
	Register(&stubBackend{name: "local"})
	if got := ListProviders(); !reflect.DeepEqual(got, []string{"acme", "local", "tencent"}) {
		t.Errorf("ListProviders() = %v after re-register, want no duplicates", got)
	}
}

func TestBackendForUnsupported(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	_, err := backendFor(MustProvider("nonexistent"))
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("backendFor error = %v, want ErrUnsupportedProvider", err)
	}
}

func TestBackendForSuggestsNearestName(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	_, err := backendFor(MustProvider("tencont"))
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("backendFor error = %v, want ErrUnsupportedProvider", err)
	}
	if !strings.Contains(err.Error(), `did you mean "tencent"?`) {
		t.Errorf("error %q does not suggest tencent", err)
	}

	// A name nowhere near any known provider gets no suggestion.
	_, err = backendFor(MustProvider("zzzzzzzzzz"))
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q suggests a name for a far-off input", err)
	}
}

func TestBackends(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(&stubBackend{name: "a"})
	Register(&stubBackend{name: "b"})
	if got := len(Backends()); got != 2 {
		t.Errorf("len(Backends()) = %d, want 2", got)
	}

	Clear()
	if got := len(Backends()); got != 0 {
		t.Errorf("len(Backends()) = %d after Clear, want 0", got)
	}
}
