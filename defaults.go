package qop

import "sync"

const (
	defaultProviderName = "tencent"
	defaultDeviceName   = defaultProviderName + Sep + "simulator:tc"
)

// defaultCtx holds the session-wide provider and device defaults. Dispatch
// operations read it at call time, so a change is visible to every
// subsequent call without further plumbing.
var defaultCtx struct {
	mu       sync.RWMutex
	provider Provider
	device   Device
}

// Populated from init rather than the declaration: MustDevice consults
// DefaultProvider for bare names, so a declaration initializer would form
// an initialization cycle through defaultCtx.
func init() {
	defaultCtx.provider = MustProvider(defaultProviderName)
	defaultCtx.device = MustDevice(defaultDeviceName)
}

// SetProvider resolves ref and installs it as the session default provider.
// A nil ref leaves the current default in place and returns it.
func SetProvider(ref any) (Provider, error) {
	p, err := ResolveProvider(ref)
	if err != nil {
		return Provider{}, err
	}
	defaultCtx.mu.Lock()
	defaultCtx.provider = p
	defaultCtx.mu.Unlock()
	return p, nil
}

// DefaultProvider returns the session default provider.
func DefaultProvider() Provider {
	defaultCtx.mu.RLock()
	defer defaultCtx.mu.RUnlock()
	return defaultCtx.provider
}

// SetDevice resolves ref and installs it as the session default device.
// A bare device name is scoped to the session default provider at the time
// of the call. A nil ref leaves the current default in place and returns it.
func SetDevice(ref any) (Device, error) {
	d, err := ResolveDevice(ref, nil)
	if err != nil {
		return Device{}, err
	}
	defaultCtx.mu.Lock()
	defaultCtx.device = d
	defaultCtx.mu.Unlock()
	return d, nil
}

// DefaultDevice returns the session default device.
func DefaultDevice() Device {
	defaultCtx.mu.RLock()
	defer defaultCtx.mu.RUnlock()
	return defaultCtx.device
}
