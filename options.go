package qop

// Option adjusts a single dispatch call. Options apply in order, so a later
// option wins over an earlier one for the same field.
type Option func(*callOptions)

type callOptions struct {
	provider any
	device   any
	token    string
	persist  bool
	shots    int
	source   string
	params   Params
}

func newCallOptions(opts []Option) *callOptions {
	co := &callOptions{shots: -1, persist: true}
	for _, opt := range opts {
		if opt != nil {
			opt(co)
		}
	}
	return co
}

// WithProvider selects the provider for the call. The reference may be a
// Provider, a provider name, or nil for the session default.
func WithProvider(ref any) Option {
	return func(co *callOptions) { co.provider = ref }
}

// WithDevice selects the device for the call. The reference may be a Device,
// a bare or full device name, or nil for the session default.
func WithDevice(ref any) Option {
	return func(co *callOptions) { co.device = ref }
}

// WithToken supplies an access token for this call only, bypassing the
// token store.
func WithToken(tok string) Option {
	return func(co *callOptions) { co.token = tok }
}

// WithPersist controls whether a token mutation writes the full mapping
// back to the persisted store. It defaults to true.
func WithPersist(v bool) Option {
	return func(co *callOptions) { co.persist = v }
}

// WithShots sets the number of measurement shots for a submission.
// Backends apply their own default when the option is absent.
func WithShots(n int) Option {
	return func(co *callOptions) { co.shots = n }
}

// WithSource supplies the circuit source payload for a submission. The
// payload is passed to the backend verbatim.
func WithSource(src string) Option {
	return func(co *callOptions) { co.source = src }
}

// WithParam attaches a provider-specific field to the call. Submission
// backends receive it alongside the circuit payload; list operations treat
// it as a server-side filter.
func WithParam(key string, value any) Option {
	return func(co *callOptions) {
		if co.params == nil {
			co.params = make(Params)
		}
		co.params[key] = value
	}
}

// WithParams attaches several provider-specific fields at once.
func WithParams(p Params) Option {
	return func(co *callOptions) {
		if len(p) == 0 {
			return
		}
		if co.params == nil {
			co.params = make(Params, len(p))
		}
		for k, v := range p {
			co.params[k] = v
		}
	}
}
