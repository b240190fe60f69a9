package qop

import (
	"fmt"
	"strings"
)

// Provider identifies a named execution backend operator, such as a
// quantum-cloud vendor or the bundled local backend. Providers are immutable
// values; two providers are equal when their canonical names are equal.
type Provider struct {
	name string
}

// ParseProvider canonicalizes a provider name. Names are trimmed and
// lower-cased, must be non-empty, and must not contain the Sep or Sep2
// delimiter tokens.
func ParseProvider(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Provider{}, fmt.Errorf("%w: empty name", ErrInvalidProviderRef)
	}
	if strings.Contains(name, Sep) || strings.Contains(name, Sep2) {
		return Provider{}, fmt.Errorf("%w: name %q contains a reserved delimiter", ErrInvalidProviderRef, name)
	}
	return Provider{name: name}, nil
}

// MustProvider is like ParseProvider but panics on error. Intended for
// package-level variables and tests with known-good names.
func MustProvider(name string) Provider {
	p, err := ParseProvider(name)
	if err != nil {
		panic(err)
	}
	return p
}

// ResolveProvider normalizes any accepted provider reference into a Provider.
// Accepted shapes: a name string, an existing Provider (idempotent), or nil,
// which resolves to the current default provider. An empty string or zero
// Provider also resolves to the default. Any other dynamic type fails with
// ErrInvalidProviderRef.
func ResolveProvider(ref any) (Provider, error) {
	switch v := ref.(type) {
	case nil:
		return DefaultProvider(), nil
	case Provider:
		if v.IsZero() {
			return DefaultProvider(), nil
		}
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return DefaultProvider(), nil
		}
		return ParseProvider(v)
	default:
		return Provider{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidProviderRef, ref)
	}
}

// Name returns the canonical provider name.
func (p Provider) Name() string { return p.name }

// String returns the canonical provider name.
func (p Provider) String() string { return p.name }

// IsZero reports whether the provider is the zero value.
func (p Provider) IsZero() bool { return p.name == "" }

// TokenKey returns the credential key for a provider-level token,
// in the form "<provider>::" (see the token file wire contract).
func (p Provider) TokenKey() string { return p.name + Sep }

// MarshalText implements encoding.TextMarshaler.
func (p Provider) MarshalText() ([]byte, error) {
	return []byte(p.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Provider) UnmarshalText(text []byte) error {
	parsed, err := ParseProvider(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
