// Package harness runs conformance scenarios against the probe dialect.
//
// A scenario is a YAML file describing a module, a stream of encoded
// attribute records at a producer version, and a list of steps to
// execute: loading the section (which drives the upgrade entry point),
// verifying the module, resolving declared side effects, and running
// range inference. Each run produces a deterministic event trace that
// is compared against golden files in tests and optionally archived.
package harness
