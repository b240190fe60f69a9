package qop

import (
	"errors"
	"testing"
)

func TestSplitTaskID(t *testing.T) {
	tests := []struct {
		raw     string
		wantDev string
		wantID  string
		wantErr error
	}{
		{"tencent::20xmon~~abc123", "tencent::20xmon", "abc123", nil},
		{"local::default~~f1f47115", "local::default", "f1f47115", nil},
		{"abc123", "", "abc123", nil},
		{"tencent::20xmon~~", "", "", ErrInvalidTaskRef},
		{"::bad~~abc", "", "", ErrInvalidDeviceRef},
	}

	for _, tt := range tests {
		dev, id, err := SplitTaskID(tt.raw)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SplitTaskID(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("SplitTaskID(%q): %v", tt.raw, err)
			continue
		}
		if dev.String() != tt.wantDev || id != tt.wantID {
			t.Errorf("SplitTaskID(%q) = (%q, %q), want (%q, %q)", tt.raw, dev.String(), id, tt.wantDev, tt.wantID)
		}
	}
}

func TestSplitTaskIDBareDeviceName(t *testing.T) {
	resetDefaults()
	t.Cleanup(resetDefaults)

	// A bare device name in a composite reference picks up the default
	// provider, same as ParseDevice.
	dev, id, err := SplitTaskID("20xmon~~abc123")
	if err != nil {
		t.Fatalf("SplitTaskID: %v", err)
	}
	if id != "abc123" {
		t.Errorf("id = %q, want %q", id, "abc123")
	}
	want := MustDevice(DefaultProvider().Name() + Sep + "20xmon")
	if dev != want {
		t.Errorf("device = %v, want %v", dev, want)
	}
}

func TestTaskString(t *testing.T) {
	dev := MustDevice("tencent::20xmon")
	withDev := NewTask("abc123", dev)
	if got := withDev.String(); got != "tencent::20xmon~~abc123" {
		t.Errorf("String() = %q, want %q", got, "tencent::20xmon~~abc123")
	}

	bare := NewTask("abc123", Device{})
	if got := bare.String(); got != "abc123" {
		t.Errorf("bare String() = %q, want %q", got, "abc123")
	}
	if _, ok := bare.Device(); ok {
		t.Error("bare task reports a device")
	}
	if d, ok := withDev.Device(); !ok || d != dev {
		t.Errorf("Device() = (%v, %v), want (%v, true)", d, ok, dev)
	}
}

func TestResolveTask(t *testing.T) {
	dev := MustDevice("tencent::20xmon")
	handle := NewTask("abc123", dev)

	got, err := resolveTask(handle)
	if err != nil {
		t.Fatalf("resolveTask(Task): %v", err)
	}
	if got != handle {
		t.Errorf("resolveTask(Task) = %v, want %v", got, handle)
	}

	got, err = resolveTask(&handle)
	if err != nil {
		t.Fatalf("resolveTask(*Task): %v", err)
	}
	if got != handle {
		t.Errorf("resolveTask(*Task) = %v, want %v", got, handle)
	}

	got, err = resolveTask("tencent::20xmon~~abc123")
	if err != nil {
		t.Fatalf("resolveTask(string): %v", err)
	}
	if got != handle {
		t.Errorf("resolveTask(string) = %v, want %v", got, handle)
	}

	got, err = resolveTask("abc123")
	if err != nil {
		t.Fatalf("resolveTask(bare string): %v", err)
	}
	if got.ID() != "abc123" {
		t.Errorf("resolveTask(bare string).ID() = %q, want %q", got.ID(), "abc123")
	}
	if _, ok := got.Device(); ok {
		t.Error("bare string resolved with a device")
	}

	for _, ref := range []any{"", "   ", Task{}, (*Task)(nil), 42} {
		if _, err := resolveTask(ref); !errors.Is(err, ErrInvalidTaskRef) {
			t.Errorf("resolveTask(%#v) error = %v, want ErrInvalidTaskRef", ref, err)
		}
	}
}

func TestTaskTextRoundTrip(t *testing.T) {
	task := NewTask("abc123", MustDevice("tencent::20xmon"))
	text, err := task.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Task
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back != task {
		t.Errorf("round trip = %v, want %v", back, task)
	}
}
