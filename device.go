package qop

import (
	"fmt"
	"strings"
)

// Sep delimits the provider from the device inside a full device name,
// as in "tencent::20xmon". It is part of the wire contract: provider and
// device names must never contain it.
const Sep = "::"

// Device identifies a specific executable resource offered by a Provider.
// The provider reference is used for lookup only; a Device does not manage
// its provider's lifecycle. A Device obtained from ParseDevice or
// ResolveDevice always carries a non-zero provider.
type Device struct {
	name     string
	provider Provider
}

// ParseDevice parses a device reference into a Device. The reference is
// either a full name of the form "provider::device" or a bare device name.
// For a full name the embedded provider must not conflict with an explicitly
// supplied one (ErrProviderDeviceMismatch). For a bare name the supplied
// provider is attached, or the current default provider when prov is zero.
func ParseDevice(ref string, prov Provider) (Device, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Device{}, fmt.Errorf("%w: empty name", ErrInvalidDeviceRef)
	}
	name := ref
	if before, after, ok := strings.Cut(ref, Sep); ok {
		embedded, err := ParseProvider(before)
		if err != nil {
			return Device{}, fmt.Errorf("%w: bad provider prefix in %q", ErrInvalidDeviceRef, ref)
		}
		if !prov.IsZero() && prov != embedded {
			return Device{}, fmt.Errorf("%w: device %q belongs to provider %q, not %q",
				ErrProviderDeviceMismatch, ref, embedded.Name(), prov.Name())
		}
		prov = embedded
		name = after
	}
	if name == "" || strings.Contains(name, Sep) || strings.Contains(name, Sep2) {
		return Device{}, fmt.Errorf("%w: bad device name %q", ErrInvalidDeviceRef, ref)
	}
	if prov.IsZero() {
		prov = DefaultProvider()
	}
	return Device{name: name, provider: prov}, nil
}

// MustDevice is like ParseDevice with no explicit provider, but panics on
// error. Intended for package-level variables and tests with known-good
// full device names.
func MustDevice(ref string) Device {
	d, err := ParseDevice(ref, Provider{})
	if err != nil {
		panic(err)
	}
	return d
}

// ResolveDevice normalizes any accepted device reference into a Device.
// Accepted shapes for dev: a name string (full or bare), an existing Device
// (idempotent), or nil, which resolves to the current default device. The
// prov argument carries an explicitly supplied provider reference and may be
// nil. Giving a provider without a device fails with ErrAmbiguousDevice: a
// provider alone does not determine a device.
func ResolveDevice(dev any, prov any) (Device, error) {
	var p Provider
	if prov != nil {
		resolved, explicit, err := explicitProvider(prov)
		if err != nil {
			return Device{}, err
		}
		if explicit {
			p = resolved
		}
	}
	switch v := dev.(type) {
	case nil:
		if !p.IsZero() {
			return Device{}, fmt.Errorf("%w: provider %q given without a device", ErrAmbiguousDevice, p.Name())
		}
		return DefaultDevice(), nil
	case Device:
		if v.IsZero() {
			if !p.IsZero() {
				return Device{}, fmt.Errorf("%w: provider %q given without a device", ErrAmbiguousDevice, p.Name())
			}
			return DefaultDevice(), nil
		}
		if !p.IsZero() && v.provider != p {
			return Device{}, fmt.Errorf("%w: device %q belongs to provider %q, not %q",
				ErrProviderDeviceMismatch, v.Name(), v.provider.Name(), p.Name())
		}
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			if !p.IsZero() {
				return Device{}, fmt.Errorf("%w: provider %q given without a device", ErrAmbiguousDevice, p.Name())
			}
			return DefaultDevice(), nil
		}
		return ParseDevice(v, p)
	default:
		return Device{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDeviceRef, dev)
	}
}

// explicitProvider resolves a provider reference without falling back to the
// default context. The second return reports whether the reference actually
// named a provider (a nil, empty, or zero reference does not).
func explicitProvider(ref any) (Provider, bool, error) {
	switch v := ref.(type) {
	case nil:
		return Provider{}, false, nil
	case Provider:
		return v, !v.IsZero(), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return Provider{}, false, nil
		}
		p, err := ParseProvider(v)
		return p, err == nil, err
	default:
		return Provider{}, false, fmt.Errorf("%w: unsupported type %T", ErrInvalidProviderRef, ref)
	}
}

// Name returns the bare device name, without the provider prefix.
func (d Device) Name() string { return d.name }

// Provider returns the provider this device belongs to.
func (d Device) Provider() Provider { return d.provider }

// String returns the full canonical device name, "provider::device".
func (d Device) String() string {
	if d.IsZero() {
		return ""
	}
	return d.provider.name + Sep + d.name
}

// IsZero reports whether the device is the zero value.
func (d Device) IsZero() bool { return d.name == "" && d.provider.IsZero() }

// TokenKey returns the credential key for a device-scoped token,
// in the form "<provider>::<device>".
func (d Device) TokenKey() string { return d.provider.name + Sep + d.name }

// MarshalText implements encoding.TextMarshaler using the full canonical
// device name.
func (d Device) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Bare device names are
// scoped to the default provider, as in ParseDevice.
func (d *Device) UnmarshalText(text []byte) error {
	parsed, err := ParseDevice(string(text), Provider{})
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
