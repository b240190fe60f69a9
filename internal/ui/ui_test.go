package ui

import (
	"os"
	"testing"
)

func TestColorFunctionsEnabled(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	tests := []struct {
		name string
		fn   func(string) string
		code string
	}{
		{"Bold", Bold, "1"},
		{"Dim", Dim, "2"},
		{"Green", Green, "32"},
		{"Red", Red, "31"},
		{"Yellow", Yellow, "33"},
		{"Cyan", Cyan, "36"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("hello")
			want := "\033[" + tt.code + "mhello\033[0m"
			if got != want {
				t.Errorf("%s(\"hello\") = %q, want %q", tt.name, got, want)
			}
		})
	}
}

func TestColorFunctionsDisabled(t *testing.T) {
	SetColorEnabled(false)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"Bold", Bold},
		{"Dim", Dim},
		{"Green", Green},
		{"Red", Red},
		{"Yellow", Yellow},
		{"Cyan", Cyan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn("hello")
			if got != "hello" {
				t.Errorf("%s(\"hello\") with color disabled = %q, want %q", tt.name, got, "hello")
			}
		})
	}
}

func TestTags(t *testing.T) {
	SetColorEnabled(true)
	defer SetColorEnabled(false)

	if got := OKTag(); got != "\033[32m✓\033[0m" {
		t.Errorf("OKTag() = %q, want green ✓", got)
	}
	if got := FailTag(); got != "\033[31m✗\033[0m" {
		t.Errorf("FailTag() = %q, want red ✗", got)
	}
	if got := WarnTag(); got != "\033[33m⚠\033[0m" {
		t.Errorf("WarnTag() = %q, want yellow ⚠", got)
	}
	if got := InfoTag(); got != "\033[36mℹ\033[0m" {
		t.Errorf("InfoTag() = %q, want cyan ℹ", got)
	}
}

func TestTagsNoColor(t *testing.T) {
	SetColorEnabled(false)

	if got := OKTag(); got != "✓" {
		t.Errorf("OKTag() = %q, want plain ✓", got)
	}
	if got := FailTag(); got != "✗" {
		t.Errorf("FailTag() = %q, want plain ✗", got)
	}
	if got := WarnTag(); got != "⚠" {
		t.Errorf("WarnTag() = %q, want plain ⚠", got)
	}
	if got := InfoTag(); got != "ℹ" {
		t.Errorf("InfoTag() = %q, want plain ℹ", got)
	}
}

func TestNO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	f, err := os.CreateTemp("", "ui-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if detectColor(f) {
		t.Error("detectColor should return false when NO_COLOR is set")
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "****"},
		{"abcd", "****"},
		{"abcdefgh", "****efgh"},
		{"sk-qcloud-2093a8f1", "****a8f1"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
