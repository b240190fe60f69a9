// Package doctor assembles the diagnostic sections printed by "qop doctor".
package doctor

import "io"

// Section is one titled block of diagnostic output.
type Section struct {
	// Title headlines the block, e.g. "Token Store".
	Title string
	// Report writes the block's diagnostics to w. A Report error is
	// shown in place of the block's body; later sections still print.
	Report func(w io.Writer) error
}

// Registry collects sections in the order they should print.
type Registry struct {
	sections []Section
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a section.
func (r *Registry) Add(s Section) {
	r.sections = append(r.sections, s)
}

// Sections returns the sections in registration order.
func (r *Registry) Sections() []Section {
	return r.sections
}
