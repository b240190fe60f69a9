package token

import "testing"

func TestSecretCodec(t *testing.T) {
	for _, secret := range []string{"", "plain", "with\nnewline", "非ASCII \x00 bytes"} {
		enc := EncodeSecret(secret)
		dec, err := DecodeSecret(enc)
		if err != nil {
			t.Errorf("DecodeSecret(EncodeSecret(%q)): %v", secret, err)
			continue
		}
		if dec != secret {
			t.Errorf("round trip of %q = %q", secret, dec)
		}
	}
}

func TestDecodeSecretInvalid(t *testing.T) {
	if _, err := DecodeSecret("%%%not-base64%%%"); err == nil {
		t.Error("DecodeSecret of invalid input expected error")
	}
}
