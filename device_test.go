package qop

import (
	"errors"
	"testing"
)

func TestParseDevice(t *testing.T) {
	tencent := MustProvider("tencent")
	local := MustProvider("local")

	tests := []struct {
		ref      string
		prov     Provider
		wantName string
		wantProv string
		wantErr  error
	}{
		{"tencent::20xmon", Provider{}, "20xmon", "tencent", nil},
		{"tencent::simulator:tc", Provider{}, "simulator:tc", "tencent", nil},
		{"20xmon", tencent, "20xmon", "tencent", nil},
		{"tencent::20xmon", tencent, "20xmon", "tencent", nil},
		{"tencent::20xmon", local, "", "", ErrProviderDeviceMismatch},
		{"", Provider{}, "", "", ErrInvalidDeviceRef},
		{"::20xmon", Provider{}, "", "", ErrInvalidDeviceRef},
		{"tencent::", Provider{}, "", "", ErrInvalidDeviceRef},
		{"a::b::c", Provider{}, "", "", ErrInvalidDeviceRef},
		{"a::b~~c", Provider{}, "", "", ErrInvalidDeviceRef},
	}

	for _, tt := range tests {
		d, err := ParseDevice(tt.ref, tt.prov)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseDevice(%q, %q) error = %v, want %v", tt.ref, tt.prov.Name(), err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDevice(%q, %q): %v", tt.ref, tt.prov.Name(), err)
			continue
		}
		if d.Name() != tt.wantName || d.Provider().Name() != tt.wantProv {
			t.Errorf("ParseDevice(%q, %q) = %q/%q, want %q/%q",
				tt.ref, tt.prov.Name(), d.Provider().Name(), d.Name(), tt.wantProv, tt.wantName)
		}
	}
}

func TestParseDeviceBareUsesDefaultProvider(t *testing.T) {
	resetDefaults()
	t.Cleanup(resetDefaults)

	d, err := ParseDevice("20xmon", Provider{})
	if err != nil {
		t.Fatalf("ParseDevice: %v", err)
	}
	if d.Provider() != DefaultProvider() {
		t.Errorf("bare device provider = %q, want default %q", d.Provider().Name(), DefaultProvider().Name())
	}
}

// A full "provider::device" name and a bare name with an explicit provider
// must resolve to the same device.
func TestFullNameEqualsBareWithProvider(t *testing.T) {
	full, err := ParseDevice("tencent::20xmon", Provider{})
	if err != nil {
		t.Fatalf("ParseDevice(full): %v", err)
	}
	bare, err := ResolveDevice("20xmon", "tencent")
	if err != nil {
		t.Fatalf("ResolveDevice(bare): %v", err)
	}
	if full != bare {
		t.Errorf("full = %v, bare = %v, want equal", full, bare)
	}
}

func TestResolveDevice(t *testing.T) {
	resetDefaults()
	t.Cleanup(resetDefaults)

	// Absent device references resolve to the default device.
	for _, ref := range []any{nil, Device{}, ""} {
		d, err := ResolveDevice(ref, nil)
		if err != nil {
			t.Fatalf("ResolveDevice(%#v, nil): %v", ref, err)
		}
		if d != DefaultDevice() {
			t.Errorf("ResolveDevice(%#v, nil) = %q, want default %q", ref, d.String(), DefaultDevice().String())
		}
	}

	// A provider alone does not determine a device.
	for _, ref := range []any{nil, Device{}, ""} {
		if _, err := ResolveDevice(ref, "tencent"); !errors.Is(err, ErrAmbiguousDevice) {
			t.Errorf("ResolveDevice(%#v, tencent) error = %v, want ErrAmbiguousDevice", ref, err)
		}
	}

	existing := MustDevice("tencent::20xmon")
	d, err := ResolveDevice(existing, nil)
	if err != nil {
		t.Fatalf("ResolveDevice(Device): %v", err)
	}
	if d != existing {
		t.Errorf("ResolveDevice(Device) = %v, want %v", d, existing)
	}

	if _, err := ResolveDevice(existing, "local"); !errors.Is(err, ErrProviderDeviceMismatch) {
		t.Errorf("conflicting provider error = %v, want ErrProviderDeviceMismatch", err)
	}

	if _, err := ResolveDevice(42, nil); !errors.Is(err, ErrInvalidDeviceRef) {
		t.Errorf("ResolveDevice(42) error = %v, want ErrInvalidDeviceRef", err)
	}
}

func TestDeviceStringAndTokenKey(t *testing.T) {
	d := MustDevice("tencent::20xmon")
	if got := d.String(); got != "tencent::20xmon" {
		t.Errorf("String() = %q, want %q", got, "tencent::20xmon")
	}
	if got := d.TokenKey(); got != "tencent::20xmon" {
		t.Errorf("TokenKey() = %q, want %q", got, "tencent::20xmon")
	}
	if got := (Device{}).String(); got != "" {
		t.Errorf("zero String() = %q, want empty", got)
	}
}

func TestDeviceTextRoundTrip(t *testing.T) {
	d := MustDevice("tencent::20xmon")
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "tencent::20xmon" {
		t.Errorf("MarshalText = %q, want %q", text, "tencent::20xmon")
	}
	var back Device
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
