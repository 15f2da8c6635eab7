// Package bytecode implements the probe dialect's versioned binary
// encoding: varint primitives, the kind-tagged attribute codec, the
// dialect section format, and the version upgrade pass.
//
// The wire layout of an attribute record depends on the producer's
// dialect version; the in-memory representation never does. Decoding
// always branches on the version read from the stream header, and any
// version newer than Current is a hard failure - there is no best-effort
// partial decode anywhere in this package.
package bytecode
