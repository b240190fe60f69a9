package qop

import (
	"errors"
	"testing"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"tencent", "tencent", false},
		{" Tencent ", "tencent", false},
		{"LOCAL", "local", false},
		{"", "", true},
		{"   ", "", true},
		{"a::b", "", true},
		{"a~~b", "", true},
		{"tencent::", "", true},
	}

	for _, tt := range tests {
		p, err := ParseProvider(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseProvider(%q) expected error", tt.input)
			} else if !errors.Is(err, ErrInvalidProviderRef) {
				t.Errorf("ParseProvider(%q) error = %v, want ErrInvalidProviderRef", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseProvider(%q): %v", tt.input, err)
			continue
		}
		if p.Name() != tt.want {
			t.Errorf("ParseProvider(%q) = %q, want %q", tt.input, p.Name(), tt.want)
		}
	}
}

func TestResolveProvider(t *testing.T) {
	resetDefaults()
	t.Cleanup(resetDefaults)

	// nil, the zero Provider, and the empty string all mean "use the default".
	for _, ref := range []any{nil, Provider{}, "", "  "} {
		p, err := ResolveProvider(ref)
		if err != nil {
			t.Fatalf("ResolveProvider(%#v): %v", ref, err)
		}
		if p != DefaultProvider() {
			t.Errorf("ResolveProvider(%#v) = %q, want default %q", ref, p.Name(), DefaultProvider().Name())
		}
	}

	existing := MustProvider("local")
	p, err := ResolveProvider(existing)
	if err != nil {
		t.Fatalf("ResolveProvider(Provider): %v", err)
	}
	if p != existing {
		t.Errorf("ResolveProvider(Provider) = %q, want %q", p.Name(), existing.Name())
	}

	p, err = ResolveProvider("Local")
	if err != nil {
		t.Fatalf("ResolveProvider(string): %v", err)
	}
	if p.Name() != "local" {
		t.Errorf("ResolveProvider(%q) = %q, want %q", "Local", p.Name(), "local")
	}

	if _, err := ResolveProvider(42); !errors.Is(err, ErrInvalidProviderRef) {
		t.Errorf("ResolveProvider(42) error = %v, want ErrInvalidProviderRef", err)
	}
}

func TestProviderTokenKey(t *testing.T) {
	p := MustProvider("tencent")
	if got := p.TokenKey(); got != "tencent::" {
		t.Errorf("TokenKey() = %q, want %q", got, "tencent::")
	}
}

func TestProviderTextRoundTrip(t *testing.T) {
	p := MustProvider("tencent")
	text, err := p.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Provider
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back != p {
		t.Errorf("round trip = %q, want %q", back.Name(), p.Name())
	}

	var bad Provider
	if err := bad.UnmarshalText([]byte("a::b")); err == nil {
		t.Error("UnmarshalText(\"a::b\") expected error")
	}
}
