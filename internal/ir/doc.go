// Package ir provides the minimal IR substrate the probe dialect plugs
// into: attribute values, operations, regions, and traversal.
//
// This package contains structural types only. All other internal packages
// import ir; ir imports nothing internal. This keeps the substrate the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Attr is a sealed interface; the closed set of kinds is the codec's
//     entire universe, so nothing outside this package may add one
//   - Attribute iteration is deterministic (sorted keys) everywhere
//   - String attributes are NFC normalized at the print boundary, never
//     in storage
package ir
