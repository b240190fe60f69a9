// Package qop routes quantum-computing workloads to heterogeneous
// provider backends through one uniform API.
//
// A provider is a named backend operator ("tencent", "local"); a device is
// one executable resource a provider offers. Device names embed their
// provider as "provider::device"; a bare device name is scoped by an
// explicit provider argument or by the session default. Submitted work is
// addressed by task handles whose composite string form is
// "provider::device~~taskid". The "::" and "~~" delimiters are part of the
// wire contract and must not appear inside provider names, device names,
// or task ids.
//
// Every operation resolves missing arguments from the session defaults
// (SetProvider, SetDevice) and a missing token from the session token
// store, scoped to the resolved provider or device. Backends register
// themselves by name; dispatching to a provider with no registered
// backend, or asking a backend for an operation it does not implement,
// fails with ErrUnsupportedProvider.
//
// Token persistence, its encoding, and its limitations are documented in
// the token package.
package qop
