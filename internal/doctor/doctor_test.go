package doctor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	for _, title := range []string{"Version", "Token Store", "Ledger"} {
		reg.Add(Section{Title: title, Report: func(io.Writer) error { return nil }})
	}

	got := reg.Sections()
	want := []string{"Version", "Token Store", "Ledger"}
	if len(got) != len(want) {
		t.Fatalf("Sections() returned %d sections, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Title != want[i] {
			t.Errorf("section %d = %q, want %q", i, s.Title, want[i])
		}
	}
}

func TestSectionReport(t *testing.T) {
	s := Section{
		Title: "Config",
		Report: func(w io.Writer) error {
			fmt.Fprintln(w, "path: /tmp/config.yaml")
			return nil
		},
	}

	var buf bytes.Buffer
	if err := s.Report(&buf); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if got := buf.String(); got != "path: /tmp/config.yaml\n" {
		t.Errorf("Report output = %q, want %q", got, "path: /tmp/config.yaml\n")
	}
}

func TestSectionReportError(t *testing.T) {
	wantErr := errors.New("store unreadable")
	s := Section{Title: "Token Store", Report: func(io.Writer) error { return wantErr }}

	if err := s.Report(io.Discard); !errors.Is(err, wantErr) {
		t.Errorf("Report error = %v, want %v", err, wantErr)
	}
}
